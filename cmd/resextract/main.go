package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/TobiSchelling/resextract/internal/config"
	"github.com/TobiSchelling/resextract/internal/database"
	"github.com/TobiSchelling/resextract/internal/logging"
	"github.com/TobiSchelling/resextract/internal/pipeline"
	"github.com/TobiSchelling/resextract/internal/reference"
	"github.com/TobiSchelling/resextract/internal/report"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *zap.SugaredLogger
)

func main() {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "resextract",
	Short:   "Knowledge extraction from UN resolutions",
	Long:    "resextract classifies resolution paragraphs, links them to SDG targets and indicators, and resolves the organizations they mention.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level, verbose)
		if err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(orgsCmd)
	rootCmd.AddCommand(keywordsCmd)
	rootCmd.AddCommand(reportCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("resextract", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/resextract/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to point at your paragraph export, vocabulary, taxonomy and embeddings.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and run status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Println("Runs:")
		fmt.Printf("  Total: %d\n", stats.Runs)
		fmt.Printf("  Completed: %d\n", stats.CompletedRuns)
		if stats.LastRunID == 0 {
			fmt.Println("\nNo completed run yet. Start one with: resextract run")
			return nil
		}
		fmt.Printf("\nLast run (#%d):\n", stats.LastRunID)
		fmt.Printf("  Paragraphs: %d\n", stats.Paragraphs)
		fmt.Printf("  Classified: %d\n", stats.ClassifiedParas)
		fmt.Printf("  Citing resolutions: %d\n", stats.ParagraphsCiting)
		fmt.Printf("  Resolutions: %d\n", stats.Resolutions)
		fmt.Printf("  Organizations: %d\n", stats.Organizations)
		fmt.Printf("  Failures: %d\n", stats.Failures)
		return nil
	},
}

// --- run command ---

var (
	dryRun  bool
	workers int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: load -> annotate -> store -> export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if workers > 0 {
			cfg.Pipeline.Workers = workers
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pipe := pipeline.New(cfg, db, logger)

		var result *pipeline.Result
		if dryRun {
			result = pipe.DryRun()
		} else {
			result = pipe.Run(ctx)
		}

		for i, step := range result.Steps {
			fmt.Printf("\nStep %d/4: %s\n", i+1, step.Name)
			if step.Err != nil {
				fmt.Printf("  Error: %v\n", step.Err)
			} else {
				fmt.Printf("  %s\n", step.Summary)
			}
		}

		if result.Failed() {
			return fmt.Errorf("run #%d failed", result.RunID)
		}
		if !dryRun {
			if len(result.Failures) > 0 {
				fmt.Printf("\n%d paragraph or resolution failures recorded.\n", len(result.Failures))
			}
			fmt.Println("\nPipeline complete! Run 'resextract report' to view the summary.")
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without executing")
	runCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Override the number of annotation workers")
}

// --- orgs command ---

var (
	orgsLimit int
	orgsRun   int64
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List the most frequently mentioned organizations of a run",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runID, err := resolveRun(db, orgsRun)
		if err != nil {
			return err
		}

		counts, err := db.TopOrganizations(runID, orgsLimit)
		if err != nil {
			return err
		}
		if len(counts) == 0 {
			fmt.Printf("Run #%d found no organizations.\n", runID)
			return nil
		}
		fmt.Printf("Organizations in run #%d:\n\n", runID)
		for _, c := range counts {
			fmt.Printf("  %5d  %s\n", c.Count, c.Name)
		}
		return nil
	},
}

func init() {
	orgsCmd.Flags().IntVarP(&orgsLimit, "limit", "n", 20, "Number of organizations to show")
	orgsCmd.Flags().Int64Var(&orgsRun, "run", 0, "Run ID (default: last completed run)")
}

// --- keywords command ---

var keywordsLimit int

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show the most frequent words of each SDG category's targets and indicators",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := pipeline.LoadSources(cfg)
		if err != nil {
			return err
		}
		reg, err := reference.Build(src, nil, textnorm.New())
		if err != nil {
			return err
		}

		for _, profile := range reg.CategoryKeywords(keywordsLimit) {
			words := make([]string, len(profile.Words))
			for i, w := range profile.Words {
				words[i] = fmt.Sprintf("%s (%d)", w.Word, w.Count)
			}
			fmt.Printf("%s\n  %s\n", profile.Category, strings.Join(words, ", "))
		}
		return nil
	},
}

func init() {
	keywordsCmd.Flags().IntVarP(&keywordsLimit, "limit", "n", 10, "Number of words per category")
}

// --- report command ---

var (
	reportRun  int64
	reportHTML bool
	reportOut  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a summary of a run as markdown or HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		r, err := report.NewComposer(db).Compose(reportRun)
		if err != nil {
			return fmt.Errorf("composing report: %w", err)
		}
		if r == nil {
			if reportRun != 0 {
				return fmt.Errorf("run %d not found", reportRun)
			}
			fmt.Println("No completed run yet. Start one with: resextract run")
			return nil
		}

		out := r.Markdown + "\n"
		if reportHTML {
			if out, err = r.RenderHTML(); err != nil {
				return err
			}
		}

		if reportOut == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(reportOut, []byte(out), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", reportOut)
		return nil
	},
}

func init() {
	reportCmd.Flags().Int64Var(&reportRun, "run", 0, "Run ID (default: last completed run)")
	reportCmd.Flags().BoolVar(&reportHTML, "html", false, "Render HTML instead of markdown")
	reportCmd.Flags().StringVarP(&reportOut, "output", "o", "", "Write the report to a file")
}

// resolveRun returns the explicit run ID or the last completed run.
func resolveRun(db *database.DB, explicit int64) (int64, error) {
	if explicit != 0 {
		run, err := db.GetRun(explicit)
		if err != nil {
			return 0, err
		}
		if run == nil {
			return 0, fmt.Errorf("run %d not found", explicit)
		}
		return run.ID, nil
	}
	run, err := db.GetLastRun()
	if err != nil {
		return 0, err
	}
	if run == nil {
		return 0, fmt.Errorf("no completed run yet; start one with: resextract run")
	}
	return run.ID, nil
}

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "resextract.db")
	return database.Open(dbPath, logger)
}

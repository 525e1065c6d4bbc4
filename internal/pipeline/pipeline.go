package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/TobiSchelling/resextract/internal/classify"
	"github.com/TobiSchelling/resextract/internal/config"
	"github.com/TobiSchelling/resextract/internal/corpus"
	"github.com/TobiSchelling/resextract/internal/database"
	"github.com/TobiSchelling/resextract/internal/embedding"
	"github.com/TobiSchelling/resextract/internal/entity"
	"github.com/TobiSchelling/resextract/internal/ingest"
	"github.com/TobiSchelling/resextract/internal/output"
	"github.com/TobiSchelling/resextract/internal/reference"
	"github.com/TobiSchelling/resextract/internal/taxonomy"
	"github.com/TobiSchelling/resextract/internal/textnorm"
)

// StageIngest marks input rows that could not be read.
const StageIngest = "ingest"

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	RunID      int64
	Steps      []StepResult
	Annotation *Annotation
	Failures   []corpus.Failure
	Outputs    []string
}

// Failed reports whether any step failed.
func (r *Result) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithRecognizer replaces the default named-entity recognizer.
func WithRecognizer(rec entity.Recognizer) Option {
	return func(p *Pipeline) { p.recognizer = rec }
}

// Pipeline orchestrates the load, annotate, store and export steps.
type Pipeline struct {
	cfg        *config.Config
	db         *database.DB
	log        *zap.SugaredLogger
	recognizer entity.Recognizer
}

// New creates a new pipeline.
func New(cfg *config.Config, db *database.DB, log *zap.SugaredLogger, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, db: db, log: log}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// inputs is everything the load step produces.
type inputs struct {
	rows     []corpus.Row
	rowErrs  []ingest.RowError
	registry *reference.Registry
}

// Run executes the full pipeline and records it as a run in the store.
func (p *Pipeline) Run(ctx context.Context) *Result {
	r := &Result{}

	runID, err := p.db.InsertRun(p.cfg.Inputs.Paragraphs)
	if err != nil {
		r.Steps = append(r.Steps, StepResult{Name: "Start", Err: fmt.Errorf("recording run: %w", err)})
		return r
	}
	r.RunID = runID
	defer p.finish(r)

	// Step 1: Load
	in, step := p.runLoad()
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}
	for _, e := range in.rowErrs {
		r.Failures = append(r.Failures, corpus.Failure{
			SourceFile: e.File, Index: -1, Line: e.Line, Stage: StageIngest, Message: e.Message,
		})
	}

	// Step 2: Annotate
	ann, step := p.runAnnotate(ctx, in)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}
	r.Annotation = ann
	r.Failures = append(r.Failures, ann.Failures()...)

	// Step 3: Store
	r.Steps = append(r.Steps, p.runStore(runID, ann, r.Failures))

	// Step 4: Export
	step, r.Outputs = p.runExport(runID, ann)
	r.Steps = append(r.Steps, step)

	return r
}

func (p *Pipeline) finish(r *Result) {
	status := database.StatusCompleted
	if r.Failed() {
		status = database.StatusFailed
	}
	counts := database.RunCounts{Failures: len(r.Failures)}
	if r.Annotation != nil {
		counts.Paragraphs = len(r.Annotation.Paragraphs)
		counts.Resolutions = len(r.Annotation.Resolutions)
	}
	if err := p.db.FinishRun(r.RunID, status, counts); err != nil {
		p.log.Errorw("finishing run", "run", r.RunID, "error", err)
	}
}

// DryRun shows what would be done without executing.
func (p *Pipeline) DryRun() *Result {
	r := &Result{}
	in := p.cfg.Inputs

	rows, rowErrs, err := ingest.ReadParagraphsFile(in.Paragraphs, in.Encoding)
	if err != nil {
		r.Steps = append(r.Steps, StepResult{Name: "Load", Err: err})
		return r
	}
	docs := corpus.Documents(rows, func(row corpus.Row) string { return row.SourceFile })

	var missing []string
	for _, path := range []string{in.Vocabulary, in.Taxonomy, in.Countries, in.Embeddings,
		in.Agencies, in.KnownOrganizations, in.CorporateNames} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, path)
		}
	}
	summary := fmt.Sprintf("[dry-run] %d rows in %d documents, %d unreadable rows", len(rows), len(docs), len(rowErrs))
	if len(missing) > 0 {
		summary += "; missing inputs: " + strings.Join(missing, ", ")
	}
	r.Steps = append(r.Steps, StepResult{Name: "Load", Summary: summary})

	r.Steps = append(r.Steps, StepResult{
		Name:    "Annotate",
		Summary: fmt.Sprintf("[dry-run] Would annotate %d rows with %d workers", len(rows), p.cfg.Pipeline.Workers),
	})

	last, _ := p.db.GetLastRun()
	if last != nil {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Store",
			Summary: fmt.Sprintf("[dry-run] Would record run after #%d in %s", last.ID, p.db.Path()),
		})
	} else {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Store",
			Summary: fmt.Sprintf("[dry-run] Would record the first run in %s", p.db.Path()),
		})
	}

	r.Steps = append(r.Steps, StepResult{
		Name:    "Export",
		Summary: fmt.Sprintf("[dry-run] Would write %s tables to %s", strings.Join(p.cfg.Output.Formats, "+"), p.outputDir(0)),
	})
	return r
}

// LoadSources reads the configured reference inputs.
func LoadSources(cfg *config.Config) (reference.Sources, error) {
	in := cfg.Inputs
	return ingest.LoadSources(ingest.Paths{
		Vocabulary:         in.Vocabulary,
		Taxonomy:           in.Taxonomy,
		Countries:          in.Countries,
		Agencies:           in.Agencies,
		KnownOrganizations: in.KnownOrganizations,
		CorporateNames:     in.CorporateNames,
		Encoding:           in.Encoding,
	})
}

func (p *Pipeline) runLoad() (*inputs, StepResult) {
	p.log.Infow("Step 1/4: Loading inputs...")
	in := p.cfg.Inputs

	rows, rowErrs, err := ingest.ReadParagraphsFile(in.Paragraphs, in.Encoding)
	if err != nil {
		return nil, StepResult{Name: "Load", Err: err}
	}
	for _, e := range rowErrs {
		p.log.Warnw("skipping input row", "file", e.File, "line", e.Line, "reason", e.Message)
	}

	src, err := LoadSources(p.cfg)
	if err != nil {
		return nil, StepResult{Name: "Load", Err: err}
	}

	norm := textnorm.New()
	var lookup embedding.Lookup
	if in.Embeddings != "" {
		store, err := embedding.LoadWord2Vec(in.Embeddings, embedding.WithVocabulary(vocabularyOf(norm, rows, src)))
		if err != nil {
			return nil, StepResult{Name: "Load", Err: err}
		}
		p.log.Infow("loaded word vectors", "words", store.Len(), "dim", store.Dim())
		lookup = store
	}

	reg, err := reference.Build(src, lookup, norm)
	if err != nil {
		return nil, StepResult{Name: "Load", Err: fmt.Errorf("building registry: %w", err)}
	}

	return &inputs{rows: rows, rowErrs: rowErrs, registry: reg}, StepResult{
		Name: "Load",
		Summary: fmt.Sprintf("Read %d rows (%d skipped), %d terms, %d targets, %d indicators, %d known entities",
			len(rows), len(rowErrs), len(reg.Vocabulary), len(reg.Targets), len(reg.Indicators), len(reg.Entities)),
	}
}

func (p *Pipeline) runAnnotate(ctx context.Context, in *inputs) (*Annotation, StepResult) {
	p.log.Infow("Step 2/4: Annotating paragraphs...", "rows", len(in.rows), "workers", p.cfg.Pipeline.Workers)

	rec := p.recognizer
	if rec == nil {
		rec = entity.NewProseRecognizer(in.registry.Countries)
	}
	c := p.cfg.Classifier
	annotator := NewAnnotator(in.registry, rec, AnnotatorOptions{
		Classifier: classify.Options{
			LeadVerbWindow: c.LeadVerbWindow,
			MinTokens:      c.MinTokens,
			LookBack:       c.LookBack,
		},
		Thresholds: taxonomy.Thresholds{
			Target:    p.cfg.Matching.TargetThreshold,
			Indicator: p.cfg.Matching.IndicatorThreshold,
		},
		Workers:       p.cfg.Pipeline.Workers,
		ProgressEvery: p.cfg.Pipeline.ProgressEvery,
	}, p.log)

	ann, err := annotator.Annotate(ctx, in.rows)
	if err != nil {
		return nil, StepResult{Name: "Annotate", Err: err}
	}
	failed := len(ann.Failures())
	return ann, StepResult{
		Name: "Annotate",
		Summary: fmt.Sprintf("Annotated %d paragraphs in %d resolutions, %d organizations, %d failures",
			len(ann.Paragraphs), len(ann.Resolutions), len(ann.Organizations), failed),
	}
}

func (p *Pipeline) runStore(runID int64, ann *Annotation, failures []corpus.Failure) StepResult {
	p.log.Infow("Step 3/4: Storing results...", "run", runID)
	if err := p.db.SaveParagraphs(runID, ann.Paragraphs); err != nil {
		return StepResult{Name: "Store", Err: fmt.Errorf("saving paragraphs: %w", err)}
	}
	if err := p.db.SaveResolutions(runID, ann.Resolutions); err != nil {
		return StepResult{Name: "Store", Err: fmt.Errorf("saving resolutions: %w", err)}
	}
	if err := p.db.SaveOrganizationCounts(runID, ann.Organizations); err != nil {
		return StepResult{Name: "Store", Err: fmt.Errorf("saving organization counts: %w", err)}
	}
	if err := p.db.SaveFailures(runID, failures); err != nil {
		return StepResult{Name: "Store", Err: fmt.Errorf("saving failures: %w", err)}
	}
	return StepResult{
		Name:    "Store",
		Summary: fmt.Sprintf("Stored run #%d in %s", runID, p.db.Path()),
	}
}

func (p *Pipeline) runExport(runID int64, ann *Annotation) (StepResult, []string) {
	p.log.Infow("Step 4/4: Exporting tables...")
	dir := p.outputDir(runID)
	var written []string
	for _, t := range []output.Table{
		output.Paragraphs(ann.Paragraphs),
		output.Resolutions(ann.Resolutions),
		output.Organizations(ann.Organizations),
	} {
		paths, err := output.Write(dir, t, p.cfg.Output.Formats)
		written = append(written, paths...)
		if err != nil {
			return StepResult{Name: "Export", Err: err}, written
		}
	}
	return StepResult{
		Name:    "Export",
		Summary: fmt.Sprintf("Wrote %d files to %s", len(written), dir),
	}, written
}

// outputDir is where the tables of a run are written.
func (p *Pipeline) outputDir(runID int64) string {
	if runID == 0 {
		return filepath.Join(p.cfg.GetDataDir(), "runs", "<next>")
	}
	return filepath.Join(p.cfg.GetDataDir(), "runs", fmt.Sprintf("%d", runID))
}

// vocabularyOf collects the lowercase tokens that can ever be looked up in
// the embedding model, so only those vectors are kept in memory.
func vocabularyOf(norm *textnorm.Normalizer, rows []corpus.Row, src reference.Sources) map[string]struct{} {
	words := make(map[string]struct{})
	add := func(text string) {
		for _, w := range norm.Words(strings.ToLower(text)) {
			words[w] = struct{}{}
		}
	}
	for _, row := range rows {
		add(row.Content)
	}
	for _, t := range src.Taxonomy {
		add(t.Content)
	}
	lists := [][]string{src.Agencies, src.KnownOrganizations, src.CorporateNames, reference.AdditionalOrganizations}
	for _, list := range lists {
		for _, name := range list {
			add(name)
		}
	}
	add("united nations")
	return words
}

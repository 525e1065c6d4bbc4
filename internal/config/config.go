package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Inputs     Inputs     `yaml:"inputs"`
	Matching   Matching   `yaml:"matching"`
	Classifier Classifier `yaml:"classifier"`
	Pipeline   Pipeline   `yaml:"pipeline"`
	Output     Output     `yaml:"output"`
	Logging    Logging    `yaml:"logging"`
}

type Inputs struct {
	Paragraphs         string `yaml:"paragraphs"`
	Vocabulary         string `yaml:"vocabulary"`
	Taxonomy           string `yaml:"taxonomy"`
	Embeddings         string `yaml:"embeddings"`
	Countries          string `yaml:"countries"`
	Agencies           string `yaml:"agencies"`
	KnownOrganizations string `yaml:"known_organizations"`
	CorporateNames     string `yaml:"corporate_names"`
	// Encoding of the CSV inputs: "utf-8" or "windows-1252".
	Encoding string `yaml:"encoding"`
}

type Matching struct {
	TargetThreshold    float64 `yaml:"target_threshold"`
	IndicatorThreshold float64 `yaml:"indicator_threshold"`
}

type Classifier struct {
	LeadVerbWindow int `yaml:"lead_verb_window"`
	MinTokens      int `yaml:"min_tokens"`
	LookBack       int `yaml:"look_back"`
}

type Pipeline struct {
	Workers       int `yaml:"workers"`
	ProgressEvery int `yaml:"progress_every"`
}

type Output struct {
	DataDir string   `yaml:"data_dir"`
	Formats []string `yaml:"formats"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for resextract.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "resextract")
}

// DataDir returns the XDG data directory for resextract.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "resextract")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/resextract/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'resextract init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Inputs: Inputs{Encoding: "utf-8"},
		Matching: Matching{
			TargetThreshold:    0.9,
			IndicatorThreshold: 0.9,
		},
		Classifier: Classifier{
			LeadVerbWindow: 10,
			MinTokens:      10,
			LookBack:       4,
		},
		Pipeline: Pipeline{
			Workers:       runtime.NumCPU(),
			ProgressEvery: 1000,
		},
		Output:  Output{Formats: []string{"xlsx"}},
		Logging: Logging{Level: "info"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Pipeline.Workers <= 0 {
		cfg.Pipeline.Workers = runtime.NumCPU()
	}
	for _, f := range cfg.Output.Formats {
		if f != "xlsx" && f != "csv" {
			return nil, fmt.Errorf("parsing config: unknown output format %q", f)
		}
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// WantsFormat reports whether output in the given format is configured.
func (c *Config) WantsFormat(format string) bool {
	for _, f := range c.Output.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

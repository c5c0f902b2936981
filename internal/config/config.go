// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-fit/internal/analysis"
	"github.com/jonathan/job-fit/internal/embedding"
	"github.com/jonathan/job-fit/internal/matching"
	"github.com/jonathan/job-fit/internal/scoring"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Profile string `json:"profile,omitempty"`  // Path to candidate profile (JSON or YAML)
	Job     string `json:"job,omitempty"`      // Path to structured job (JSON or YAML)
	JobsDir string `json:"jobs_dir,omitempty"` // Directory of job files for batch analysis

	// Embeddings
	Provider string `json:"provider,omitempty"` // gemini, openai or hash
	Model    string `json:"model,omitempty"`    // Provider model name; provider default when empty
	APIKey   string `json:"api_key,omitempty"`  // Provider API key

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Redis URL for the shared embedding cache

	// Engine tuning
	MustHaveThreshold    *float64         `json:"must_have_threshold,omitempty"`
	NiceToHaveThreshold  *float64         `json:"nice_to_have_threshold,omitempty"`
	AchievementThreshold *float64         `json:"achievement_threshold,omitempty"`
	Weights              *scoring.Weights `json:"weights,omitempty"`
	Concurrency          int              `json:"concurrency,omitempty"`

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	LogJSON     bool   `json:"log_json,omitempty"`     // Emit JSON logs instead of console logs
	MetricsFile string `json:"metrics_file,omitempty"` // Write Prometheus textfile metrics here after a run
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging. Threshold and weight ranges are
// re-checked by the engine at construction.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobsDir != "" {
		return fmt.Errorf("config error: 'job' and 'jobs_dir' are mutually exclusive")
	}

	switch c.Provider {
	case "", embedding.ProviderGemini, embedding.ProviderOpenAI, embedding.ProviderHash:
	default:
		return fmt.Errorf("config error: unknown provider %q (want gemini, openai or hash)", c.Provider)
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	for name, v := range map[string]*float64{
		"must_have_threshold":    c.MustHaveThreshold,
		"nice_to_have_threshold": c.NiceToHaveThreshold,
		"achievement_threshold":  c.AchievementThreshold,
	} {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("config error: '%s' must be in [0,1]", name)
		}
	}

	if c.Weights != nil {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobsDir == "" {
		result.JobsDir = defaults.JobsDir
	}
	if result.Provider == "" {
		if defaults.Provider != "" {
			result.Provider = defaults.Provider
		} else {
			result.Provider = embedding.ProviderGemini
		}
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.MetricsFile == "" {
		result.MetricsFile = defaults.MetricsFile
	}

	// Pointer fields: nil means unset
	if result.MustHaveThreshold == nil {
		result.MustHaveThreshold = defaults.MustHaveThreshold
	}
	if result.NiceToHaveThreshold == nil {
		result.NiceToHaveThreshold = defaults.NiceToHaveThreshold
	}
	if result.AchievementThreshold == nil {
		result.AchievementThreshold = defaults.AchievementThreshold
	}
	if result.Weights == nil {
		result.Weights = defaults.Weights
	}

	// Int fields: use default if zero
	if result.Concurrency == 0 {
		if defaults.Concurrency > 0 {
			result.Concurrency = defaults.Concurrency
		} else {
			result.Concurrency = 4
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Thresholds returns the configured matching cutoffs over the defaults
func (c *Config) Thresholds() matching.Thresholds {
	t := matching.DefaultThresholds()
	if c.MustHaveThreshold != nil {
		t.MustHave = *c.MustHaveThreshold
	}
	if c.NiceToHaveThreshold != nil {
		t.NiceToHave = *c.NiceToHaveThreshold
	}
	if c.AchievementThreshold != nil {
		t.Achievement = *c.AchievementThreshold
	}
	return t
}

// EngineOptions translates the tuning fields into engine options
func (c *Config) EngineOptions() []analysis.Option {
	opts := []analysis.Option{analysis.WithThresholds(c.Thresholds())}
	if c.Weights != nil {
		opts = append(opts, analysis.WithWeights(*c.Weights))
	}
	if c.Concurrency > 0 {
		opts = append(opts, analysis.WithConcurrency(c.Concurrency))
	}
	return opts
}

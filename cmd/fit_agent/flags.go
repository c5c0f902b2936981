package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit/internal/config"
)

// commonFlags are the flags shared by every command that builds an engine
type commonFlags struct {
	configPath  string
	profile     string
	provider    string
	model       string
	apiKey      string
	redisURL    string
	databaseURL string
	concurrency int
	verbose     bool
	logJSON     bool
	metricsFile string
}

func bindCommonFlags(cmd *cobra.Command, f *commonFlags) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "Path to candidate profile (JSON or YAML)")
	cmd.Flags().StringVar(&f.provider, "provider", "", "Embedding provider: gemini, openai or hash (default gemini)")
	cmd.Flags().StringVar(&f.model, "model", "", "Embedding model (provider default when empty)")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "Provider API key (optional, defaults to GEMINI_API_KEY or OPENAI_API_KEY)")
	cmd.Flags().StringVar(&f.redisURL, "redis-url", "", "Redis URL for the shared embedding cache (optional, defaults to REDIS_URL env var)")
	cmd.Flags().StringVar(&f.databaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "Maximum concurrent embedding calls")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print detailed debug information")
	cmd.Flags().BoolVar(&f.logJSON, "log-json", false, "Emit JSON logs")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics after the run")
}

// resolveConfig applies explicitly set flags over the config file, then fills
// defaults and environment fallbacks.
func resolveConfig(cmd *cobra.Command, f *commonFlags) (config.Config, error) {
	var cfg config.Config
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("profile") {
		cfg.Profile = f.profile
	}
	if flags.Changed("provider") {
		cfg.Provider = f.provider
	}
	if flags.Changed("model") {
		cfg.Model = f.model
	}
	if flags.Changed("api-key") {
		cfg.APIKey = f.apiKey
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = f.redisURL
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = f.databaseURL
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if flags.Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if flags.Changed("log-json") {
		cfg.LogJSON = f.logJSON
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}

	cfg = cfg.MergeWithDefaults(config.Config{})
	cfg.ApplyEnv()

	if cfg.Profile == "" {
		return config.Config{}, fmt.Errorf("--profile is required (or set 'profile' in config file)")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

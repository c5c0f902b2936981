package config

import (
	"os"

	"github.com/jonathan/job-fit/internal/embedding"
)

// Environment variables read by ApplyEnv
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvRedisURL     = "REDIS_URL"
)

// APIKeyFromEnv returns the API key variable for the given provider, or "" for
// providers that need none.
func APIKeyFromEnv(provider string) string {
	switch provider {
	case embedding.ProviderOpenAI:
		return os.Getenv(EnvOpenAIAPIKey)
	case embedding.ProviderHash:
		return ""
	default:
		return os.Getenv(EnvGeminiAPIKey)
	}
}

// ApplyEnv fills empty secrets and URLs from the environment. Flags and the
// config file take precedence.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = APIKeyFromEnv(c.Provider)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.RedisURL == "" {
		c.RedisURL = os.Getenv(EnvRedisURL)
	}
}

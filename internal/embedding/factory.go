package embedding

import (
	"context"
	"fmt"
)

// Provider names accepted by NewProvider
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderHash   = "hash"
)

// NewProvider builds the named provider. model may be empty to use the provider default.
func NewProvider(ctx context.Context, name, model, apiKey string) (Provider, error) {
	switch name {
	case ProviderGemini, "":
		return NewGeminiProvider(ctx, apiKey, model)
	case ProviderOpenAI:
		return NewOpenAIProvider(apiKey, model)
	case ProviderHash:
		return NewHashProvider(), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", name)
	}
}

// Package embedding provides text embedding providers and the read-through cache the matchers use.
package embedding

import "context"

// Provider converts text into a fixed-dimension vector.
// Implementations must be deterministic for a given ModelID.
type Provider interface {
	// Embed returns the embedding for text
	Embed(ctx context.Context, text string) ([]float64, error)
	// ModelID identifies the model and version; vectors from different models are not comparable
	ModelID() string
}

// BatchProvider is implemented by providers that can embed several texts in one call.
type BatchProvider interface {
	Provider
	// EmbedBatch returns one vector per input text, in input order
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

var (
	_ BatchProvider = (*CachedProvider)(nil)
	_ BatchProvider = (*GeminiProvider)(nil)
	_ BatchProvider = (*OpenAIProvider)(nil)
	_ BatchProvider = (*HashProvider)(nil)
)

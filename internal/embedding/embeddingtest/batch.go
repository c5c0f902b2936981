package embeddingtest

import (
	"context"
	"sync"
)

// SingleProvider is the subset of embedding.Provider that BatchingProvider wraps
type SingleProvider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	ModelID() string
}

// BatchingProvider adds an all-or-nothing EmbedBatch to a single-text provider
// and counts how many batches it served.
type BatchingProvider struct {
	SingleProvider

	mu    sync.Mutex
	sizes []int
}

// Batching wraps p so it also satisfies embedding.BatchProvider
func Batching(p SingleProvider) *BatchingProvider {
	return &BatchingProvider{SingleProvider: p}
}

// EmbedBatch embeds texts in order and fails the whole batch on the first error
func (p *BatchingProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	p.mu.Lock()
	p.sizes = append(p.sizes, len(texts))
	p.mu.Unlock()

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := p.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// Batches returns how many EmbedBatch calls were made
func (p *BatchingProvider) Batches() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sizes)
}

// BatchSizes returns the number of texts in each EmbedBatch call, in call order
func (p *BatchingProvider) BatchSizes() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.sizes...)
}

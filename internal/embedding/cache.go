package embedding

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/job-fit/internal/logger"
	"github.com/jonathan/job-fit/internal/metrics"
)

// Cache is an append-only, concurrency-safe map from exact text to vector for one model.
// Duplicate inserts overwrite; the value is a pure function of (model, text) so races are harmless.
type Cache struct {
	model   string
	mu      sync.RWMutex
	vectors map[string][]float64
}

// NewCache creates an empty cache bound to a model identifier
func NewCache(model string) *Cache {
	return &Cache{
		model:   model,
		vectors: make(map[string][]float64),
	}
}

// Model returns the model identifier the cache was created for
func (c *Cache) Model() string {
	return c.model
}

// Get returns the cached vector for text. The returned slice must not be modified.
func (c *Cache) Get(text string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	vec, ok := c.vectors[text]
	return vec, ok
}

// Put stores the vector for text
func (c *Cache) Put(text string, vec []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vectors[text] = vec
}

// Len returns the number of cached texts
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vectors)
}

// CachedProvider is a read-through Provider: memory cache, then an optional persistent
// Store, then the underlying provider.
type CachedProvider struct {
	provider Provider
	cache    *Cache
	store    Store
	log      *zap.Logger
	metrics  *metrics.Recorder
}

// CachedOption configures a CachedProvider
type CachedOption func(*CachedProvider)

// WithStore adds a persistent tier consulted after the memory cache
func WithStore(store Store) CachedOption {
	return func(p *CachedProvider) {
		p.store = store
	}
}

// WithLogger sets the logger used for store warnings
func WithLogger(log *zap.Logger) CachedOption {
	return func(p *CachedProvider) {
		if log != nil {
			p.log = log
		}
	}
}

// WithMetrics sets the recorder for cache hit/miss counters
func WithMetrics(m *metrics.Recorder) CachedOption {
	return func(p *CachedProvider) {
		p.metrics = m
	}
}

// NewCachedProvider wraps provider with cache. The cache must belong to the provider's model.
func NewCachedProvider(provider Provider, cache *Cache, opts ...CachedOption) (*CachedProvider, error) {
	if provider == nil {
		return nil, fmt.Errorf("embedding provider is required")
	}
	if cache == nil {
		cache = NewCache(provider.ModelID())
	}
	if cache.Model() != provider.ModelID() {
		return nil, fmt.Errorf("cache was built for model %q but provider is %q", cache.Model(), provider.ModelID())
	}

	p := &CachedProvider{
		provider: provider,
		cache:    cache,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// With returns a copy of p with opts applied. The copy shares the provider, the memory
// cache and, unless replaced, the store.
func (p *CachedProvider) With(opts ...CachedOption) *CachedProvider {
	clone := &CachedProvider{
		provider: p.provider,
		cache:    p.cache,
		store:    p.store,
		log:      p.log,
		metrics:  p.metrics,
	}
	for _, opt := range opts {
		opt(clone)
	}
	return clone
}

// ModelID returns the underlying provider's model identifier
func (p *CachedProvider) ModelID() string {
	return p.provider.ModelID()
}

// Cache returns the memory tier
func (p *CachedProvider) Cache() *Cache {
	return p.cache
}

// maxBatchSize bounds the texts sent to the provider in one request
const maxBatchSize = 100

// Embed returns the vector for text, consulting each cache tier before the provider.
// Provider failures are returned as *EmbeddingError.
func (p *CachedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if vec, ok := p.lookup(ctx, text); ok {
		return vec, nil
	}

	model := p.provider.ModelID()
	p.metrics.RecordCacheMiss()
	p.metrics.RecordEmbeddingRequest()
	vec, err := p.provider.Embed(ctx, text)
	if err != nil {
		p.metrics.RecordEmbeddingError()
		return nil, &EmbeddingError{Text: text, Model: model, Cause: err}
	}

	p.remember(ctx, text, vec)
	return vec, nil
}

// EmbedBatch resolves texts from the cache tiers and sends the distinct misses to the
// provider in requests of at most maxBatchSize texts. It returns ErrBatchUnsupported,
// before any lookup, when the provider is not a BatchProvider. A failed request fails
// the whole call with *EmbeddingError; vectors from earlier requests stay cached.
func (p *CachedProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	inner, ok := p.provider.(BatchProvider)
	if !ok {
		return nil, ErrBatchUnsupported
	}

	vectors := make([][]float64, len(texts))
	positions := make(map[string][]int)
	var misses []string
	for i, text := range texts {
		if idx, seen := positions[text]; seen {
			positions[text] = append(idx, i)
			continue
		}
		if vec, ok := p.lookup(ctx, text); ok {
			vectors[i] = vec
			continue
		}
		positions[text] = []int{i}
		misses = append(misses, text)
	}

	model := p.provider.ModelID()
	for start := 0; start < len(misses); start += maxBatchSize {
		chunk := misses[start:min(start+maxBatchSize, len(misses))]
		for range chunk {
			p.metrics.RecordCacheMiss()
		}
		p.metrics.RecordEmbeddingRequest()

		fresh, err := inner.EmbedBatch(ctx, chunk)
		if err == nil && len(fresh) != len(chunk) {
			err = fmt.Errorf("expected %d embeddings, got %d", len(chunk), len(fresh))
		}
		if err != nil {
			p.metrics.RecordEmbeddingError()
			return nil, &EmbeddingError{
				Text:  chunk[0],
				Model: model,
				Cause: fmt.Errorf("batch of %d texts: %w", len(chunk), err),
			}
		}

		for k, text := range chunk {
			if len(fresh[k]) == 0 {
				p.metrics.RecordEmbeddingError()
				return nil, &EmbeddingError{Text: text, Model: model, Cause: fmt.Errorf("empty vector in batch response")}
			}
			p.remember(ctx, text, fresh[k])
			for _, i := range positions[text] {
				vectors[i] = fresh[k]
			}
		}
	}
	return vectors, nil
}

// lookup consults the memory tier, then the store. Store errors are logged and treated as misses.
func (p *CachedProvider) lookup(ctx context.Context, text string) ([]float64, bool) {
	if vec, ok := p.cache.Get(text); ok {
		p.metrics.RecordCacheHit("memory")
		return vec, true
	}
	if p.store == nil {
		return nil, false
	}

	model := p.provider.ModelID()
	vec, found, err := p.store.Get(ctx, model, text)
	if err != nil {
		p.log.Warn("embedding store lookup failed",
			zap.String("model", model),
			zap.String("text", logger.TruncateForLog(text, 60)),
			zap.Error(err))
		return nil, false
	}
	if !found {
		return nil, false
	}
	p.metrics.RecordCacheHit("store")
	p.cache.Put(text, vec)
	return vec, true
}

// remember writes a fresh vector to the memory tier and the store
func (p *CachedProvider) remember(ctx context.Context, text string, vec []float64) {
	p.cache.Put(text, vec)
	if p.store == nil {
		return
	}
	if err := p.store.Put(ctx, p.provider.ModelID(), text, vec); err != nil {
		p.log.Warn("embedding store write failed",
			zap.String("model", p.provider.ModelID()),
			zap.String("text", logger.TruncateForLog(text, 60)),
			zap.Error(err))
	}
}

package analysis

import (
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-fit/internal/embedding"
	"github.com/jonathan/job-fit/internal/matching"
	"github.com/jonathan/job-fit/internal/metrics"
	"github.com/jonathan/job-fit/internal/scoring"
)

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger; the default discards everything
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithMetrics records analysis and embedding metrics on m
func WithMetrics(m *metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithClock sets the time source for tenure and recency
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithThresholds overrides the matching cutoffs
func WithThresholds(t matching.Thresholds) Option {
	return func(e *Engine) {
		e.thresholds = t
	}
}

// WithWeights overrides the compatibility weights
func WithWeights(w scoring.Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithConcurrency bounds parallel embedding calls per analysis and parallel analyses per batch
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithCache shares an embedding cache across engines. The cache must match the provider's model.
func WithCache(c *embedding.Cache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithStore adds a persistent embedding tier behind the memory cache
func WithStore(s embedding.Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

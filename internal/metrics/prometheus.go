// Package metrics provides Prometheus metrics for the job-fit analysis engine.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes used as the "outcome" label.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

// Recorder holds the engine's metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	registry       *prometheus.Registry

	analyses          *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	compatibility     prometheus.Histogram
	gaps              *prometheus.CounterVec
	embeddingRequests prometheus.Counter
	embeddingErrors   prometheus.Counter
	cacheHits         *prometheus.CounterVec
	cacheMisses       prometheus.Counter
}

// NewRecorder creates a Recorder on its own registry unless WithRegistry is given.
func NewRecorder(opts ...Option) *Recorder {
	r := &Recorder{
		namespace:      "jobfit",
		subsystem:      "engine",
		latencyBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	r.initializeMetrics()
	return r
}

func (r *Recorder) initializeMetrics() {
	auto := promauto.With(r.registry)

	r.analyses = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "analyses_total",
		Help:      "Total number of job/profile analyses by outcome",
	}, []string{"outcome"})

	r.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "analysis_duration_seconds",
		Help:      "Wall time of a complete analysis",
		Buckets:   r.latencyBuckets,
	})

	r.compatibility = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "compatibility_score",
		Help:      "Distribution of overall compatibility scores (0-100)",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})

	r.gaps = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "qualification_gaps_total",
		Help:      "Qualification gaps identified, by importance",
	}, []string{"importance"})

	r.embeddingRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "embedding_requests_total",
		Help:      "Calls made to the embedding provider",
	})

	r.embeddingErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "embedding_errors_total",
		Help:      "Embedding provider failures",
	})

	r.cacheHits = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "embedding_cache_hits_total",
		Help:      "Embedding cache hits by tier",
	}, []string{"tier"})

	r.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "embedding_cache_misses_total",
		Help:      "Embedding lookups that fell through every cache tier",
	})
}

// RecordAnalysis counts a finished analysis and observes its duration.
func (r *Recorder) RecordAnalysis(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(outcome).Inc()
	r.analysisDuration.Observe(elapsed.Seconds())
}

// ObserveCompatibility records an overall compatibility score.
func (r *Recorder) ObserveCompatibility(overall float64) {
	if r == nil {
		return
	}
	r.compatibility.Observe(overall)
}

// RecordGap counts an identified qualification gap.
func (r *Recorder) RecordGap(importance string) {
	if r == nil {
		return
	}
	r.gaps.WithLabelValues(importance).Inc()
}

// RecordEmbeddingRequest counts a call to the embedding provider.
func (r *Recorder) RecordEmbeddingRequest() {
	if r == nil {
		return
	}
	r.embeddingRequests.Inc()
}

// RecordEmbeddingError counts a failed embedding call.
func (r *Recorder) RecordEmbeddingError() {
	if r == nil {
		return
	}
	r.embeddingErrors.Inc()
}

// RecordCacheHit counts a cache hit on the named tier ("memory", "store").
func (r *Recorder) RecordCacheHit(tier string) {
	if r == nil {
		return
	}
	r.cacheHits.WithLabelValues(tier).Inc()
}

// RecordCacheMiss counts a lookup that reached the provider.
func (r *Recorder) RecordCacheMiss() {
	if r == nil {
		return
	}
	r.cacheMisses.Inc()
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// WriteTextfile writes the current metrics in the node_exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}

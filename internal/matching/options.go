package matching

import (
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-fit/internal/types"
)

// Thresholds are the tunable similarity cutoffs used by the matchers
type Thresholds struct {
	// MustHave is the minimum best-match score for a must-have requirement to count as met
	MustHave float64 `json:"must_have"`
	// NiceToHave applies to nice-to-have and preferred requirements
	NiceToHave float64 `json:"nice_to_have"`
	// Achievement is the similarity an achievement must exceed to be reported as relevant
	Achievement float64 `json:"achievement"`
}

// DefaultThresholds returns the standard cutoffs: 0.7 / 0.5 / 0.6
func DefaultThresholds() Thresholds {
	return Thresholds{
		MustHave:    types.DefaultMustHaveThreshold,
		NiceToHave:  types.DefaultNiceToHaveThreshold,
		Achievement: 0.6,
	}
}

// Option configures a Matcher
type Option func(*Matcher)

// WithThresholds overrides the default cutoffs
func WithThresholds(t Thresholds) Option {
	return func(m *Matcher) {
		m.thresholds = t
	}
}

// WithConcurrency bounds the number of in-flight embedding calls per analysis
func WithConcurrency(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithLogger sets the logger for per-item embedding warnings
func WithLogger(log *zap.Logger) Option {
	return func(m *Matcher) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock sets the time source used for tenure and recency
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) {
		if now != nil {
			m.now = now
		}
	}
}

// Package embeddingtest provides deterministic embedding providers for tests.
package embeddingtest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
)

// ErrForcedFailure is returned for texts listed in ConceptProvider.FailOn
var ErrForcedFailure = errors.New("forced embedding failure")

// Concept is one axis of the fake embedding space. A text activates the axis
// when it contains any of the trigger words (case-insensitive substring match).
type Concept struct {
	Name     string
	Triggers []string
}

// ConceptProvider maps text onto one dimension per Concept plus a constant bias dimension.
// Two texts sharing a concept are similar; a non-zero Bias gives unrelated texts a floor
// similarity, which is how real embedding models behave.
type ConceptProvider struct {
	Concepts []Concept
	Bias     float64
	Model    string

	mu     sync.Mutex
	failOn map[string]bool
	calls  atomic.Int64
}

// NewConceptProvider creates a provider over the given concepts
func NewConceptProvider(bias float64, concepts ...Concept) *ConceptProvider {
	return &ConceptProvider{
		Concepts: concepts,
		Bias:     bias,
		Model:    "concept-test-v1",
		failOn:   make(map[string]bool),
	}
}

// FailOn makes Embed return ErrForcedFailure for the exact text
func (p *ConceptProvider) FailOn(texts ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range texts {
		p.failOn[t] = true
	}
}

// Calls returns how many times Embed reached the provider
func (p *ConceptProvider) Calls() int {
	return int(p.calls.Load())
}

// ModelID implements embedding.Provider
func (p *ConceptProvider) ModelID() string {
	return p.Model
}

// Embed implements embedding.Provider
func (p *ConceptProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	p.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	fail := p.failOn[text]
	p.mu.Unlock()
	if fail {
		return nil, ErrForcedFailure
	}

	lower := strings.ToLower(text)
	vec := make([]float64, len(p.Concepts)+1)
	for i, c := range p.Concepts {
		for _, trigger := range c.Triggers {
			if strings.Contains(lower, strings.ToLower(trigger)) {
				vec[i] = 1
				break
			}
		}
	}
	vec[len(p.Concepts)] = p.Bias
	return vec, nil
}

// Package scoring combines skill and experience matches into a weighted compatibility score.
package scoring

import (
	"fmt"
	"math"
)

const weightTolerance = 1e-6

// Weights are the relative contributions of each sub-score to the overall score.
// They must sum to 1.0.
type Weights struct {
	Technical       float64 `json:"technical"`
	Experience      float64 `json:"experience"`
	RequirementsMet float64 `json:"requirements_met"`
	SoftSkills      float64 `json:"soft_skills"`
	Education       float64 `json:"education"`
}

// DefaultWeights returns 0.35 / 0.25 / 0.20 / 0.10 / 0.10
func DefaultWeights() Weights {
	return Weights{
		Technical:       0.35,
		Experience:      0.25,
		RequirementsMet: 0.20,
		SoftSkills:      0.10,
		Education:       0.10,
	}
}

// Sum returns the total of all weights
func (w Weights) Sum() float64 {
	return w.Technical + w.Experience + w.RequirementsMet + w.SoftSkills + w.Education
}

// Validate checks that every weight is in [0,1] and the weights sum to 1.0
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"technical", w.Technical},
		{"experience", w.Experience},
		{"requirements_met", w.RequirementsMet},
		{"soft_skills", w.SoftSkills},
		{"education", w.Education},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || n.value < 0 || n.value > 1 {
			return fmt.Errorf("weight %s must be in [0,1], got %v", n.name, n.value)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.4f", sum)
	}
	return nil
}

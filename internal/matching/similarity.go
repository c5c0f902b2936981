// Package matching scores job requirements against candidate skills and candidate
// experiences against the job, using embedding cosine similarity.
package matching

import "math"

// CosineSimilarity returns dot(a,b)/(|a|*|b|) clamped to [0, 1].
// It is 0 when either vector has zero norm or the dimensions differ.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// opposed vectors count as no match; rounding can push identical vectors past 1
	return math.Max(0, math.Min(1, sim))
}

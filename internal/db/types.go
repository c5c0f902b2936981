package db

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRecord is the indexed summary of a stored analysis
type AnalysisRecord struct {
	ID             uuid.UUID `json:"id"`
	JobRef         string    `json:"job_ref"`
	ProfileRef     string    `json:"profile_ref"`
	EmbeddingModel string    `json:"embedding_model"`
	Overall        float64   `json:"overall"`
	MatchLevel     string    `json:"match_level"`
	CreatedAt      time.Time `json:"created_at"`
}

// AnalysisFilters holds optional filters for listing analyses
type AnalysisFilters struct {
	JobRef     string
	ProfileRef string
	MinOverall float64
	Limit      int
}

// DefaultListLimit caps ListAnalyses when no limit is given
const DefaultListLimit = 50

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-fit/internal/types"
)

// SaveAnalysis stores a full analysis result and returns its ID
func (db *DB) SaveAnalysis(ctx context.Context, result *types.AnalysisResult) (uuid.UUID, error) {
	if result == nil {
		return uuid.Nil, fmt.Errorf("analysis result cannot be nil")
	}

	content, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (job_ref, profile_ref, embedding_model, overall, match_level, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		result.JobRef, result.ProfileRef, result.EmbeddingModel,
		result.Compatibility.Overall, string(result.Compatibility.MatchLevel()), content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// GetAnalysis retrieves a stored analysis by ID, or nil when absent
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*types.AnalysisResult, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM analyses WHERE id = $1`,
		id,
	).Scan(&content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &result, nil
}

// ListAnalyses retrieves analysis summaries, newest first
func (db *DB) ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]AnalysisRecord, error) {
	query, args := buildListQuery(filters)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []AnalysisRecord
	for rows.Next() {
		var r AnalysisRecord
		if err := rows.Scan(&r.ID, &r.JobRef, &r.ProfileRef, &r.EmbeddingModel, &r.Overall, &r.MatchLevel, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, nil
}

// DeleteAnalysis removes a stored analysis
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}

func buildListQuery(filters AnalysisFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}

	query := `SELECT id, job_ref, profile_ref, embedding_model, overall, match_level, created_at
		FROM analyses WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.JobRef != "" {
		query += fmt.Sprintf(" AND job_ref = $%d", argNum)
		args = append(args, filters.JobRef)
		argNum++
	}
	if filters.ProfileRef != "" {
		query += fmt.Sprintf(" AND profile_ref = $%d", argNum)
		args = append(args, filters.ProfileRef)
		argNum++
	}
	if filters.MinOverall > 0 {
		query += fmt.Sprintf(" AND overall >= $%d", argNum)
		args = append(args, filters.MinOverall)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	return query, args
}

package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-fit/internal/embedding"
)

// EmbeddingStore persists embedding vectors keyed by model and text hash
type EmbeddingStore struct {
	db *DB
}

var _ embedding.Store = (*EmbeddingStore)(nil)

// EmbeddingStore returns a store backed by the embeddings table
func (db *DB) EmbeddingStore() *EmbeddingStore {
	return &EmbeddingStore{db: db}
}

// Get returns the stored vector for text under model
func (s *EmbeddingStore) Get(ctx context.Context, model, text string) ([]float64, bool, error) {
	var vector []float64
	err := s.db.pool.QueryRow(ctx,
		`SELECT vector FROM embeddings WHERE model = $1 AND text_hash = $2`,
		model, embedding.TextHash(text),
	).Scan(&vector)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get embedding: %w", err)
	}
	return vector, true, nil
}

// Put stores or replaces the vector for text under model
func (s *EmbeddingStore) Put(ctx context.Context, model, text string, vector []float64) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO embeddings (model, text_hash, vector)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (model, text_hash) DO UPDATE SET vector = $3, created_at = NOW()`,
		model, embedding.TextHash(text), vector,
	)
	if err != nil {
		return fmt.Errorf("failed to save embedding: %w", err)
	}
	return nil
}

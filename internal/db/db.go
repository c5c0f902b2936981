// Package db provides PostgreSQL storage for analysis results and embedding vectors.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS analyses (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	job_ref         TEXT NOT NULL,
	profile_ref     TEXT NOT NULL,
	embedding_model TEXT NOT NULL,
	overall         DOUBLE PRECISION NOT NULL,
	match_level     TEXT NOT NULL,
	content         JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS analyses_job_ref_idx ON analyses (job_ref);
CREATE INDEX IF NOT EXISTS analyses_profile_ref_idx ON analyses (profile_ref);

CREATE TABLE IF NOT EXISTS embeddings (
	model      TEXT NOT NULL,
	text_hash  TEXT NOT NULL,
	vector     DOUBLE PRECISION[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (model, text_hash)
);
`

// EnsureSchema creates the analyses and embeddings tables when missing
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

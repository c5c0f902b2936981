package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// Store is a persistent embedding cache tier shared across processes.
type Store interface {
	// Get returns the stored vector for (model, text); found is false on a miss
	Get(ctx context.Context, model, text string) (vec []float64, found bool, err error)
	// Put stores the vector for (model, text)
	Put(ctx context.Context, model, text string, vec []float64) error
}

// TextHash is the stable key persistent stores use for a text
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

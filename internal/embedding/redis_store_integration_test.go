//go:build integration

package embedding

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_RoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	store, err := NewRedisStore(ctx, url, 0)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, found, err := store.Get(ctx, "test-model", "never stored text")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Put(ctx, "test-model", "python", []float64{0.1, 0.2}))

	vec, found, err := store.Get(ctx, "test-model", "python")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []float64{0.1, 0.2}, vec)

	// model-scoped
	_, found, err = store.Get(ctx, "other-model", "python")
	require.NoError(t, err)
	assert.False(t, found)
}

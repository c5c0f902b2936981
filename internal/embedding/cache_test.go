package embedding

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-fit/internal/metrics"
)

type countingProvider struct {
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]bool
	model string
}

func newCountingProvider() *countingProvider {
	return &countingProvider{
		calls: make(map[string]int),
		fail:  make(map[string]bool),
		model: "counting-v1",
	}
}

func (p *countingProvider) ModelID() string { return p.model }

func (p *countingProvider) Embed(_ context.Context, text string) ([]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[text]++
	if p.fail[text] {
		return nil, errors.New("provider down")
	}
	return []float64{float64(len(text)), 1}, nil
}

func (p *countingProvider) callsFor(text string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[text]
}

type mapStore struct {
	mu      sync.Mutex
	entries map[string][]float64
	getErr  error
}

func newMapStore() *mapStore {
	return &mapStore{entries: make(map[string][]float64)}
}

func (s *mapStore) Get(_ context.Context, model, text string) ([]float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	vec, ok := s.entries[model+":"+TextHash(text)]
	return vec, ok, nil
}

func (s *mapStore) Put(_ context.Context, model, text string, vec []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[model+":"+TextHash(text)] = vec
	return nil
}

func TestCache_PutGet(t *testing.T) {
	c := NewCache("m1")
	_, ok := c.Get("python")
	assert.False(t, ok)

	c.Put("python", []float64{1, 2})
	vec, ok := c.Get("python")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, vec)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "m1", c.Model())

	// last writer wins
	c.Put("python", []float64{3})
	vec, _ = c.Get("python")
	assert.Equal(t, []float64{3}, vec)
	assert.Equal(t, 1, c.Len())
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache("m1")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Put("shared", []float64{1})
			_, _ = c.Get("shared")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
}

func TestNewCachedProvider_ModelMismatch(t *testing.T) {
	_, err := NewCachedProvider(newCountingProvider(), NewCache("other-model"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "other-model")
}

func TestNewCachedProvider_NilProvider(t *testing.T) {
	_, err := NewCachedProvider(nil, nil)
	require.Error(t, err)
}

func TestCachedProvider_MemoizesByExactText(t *testing.T) {
	inner := newCountingProvider()
	p, err := NewCachedProvider(inner, nil)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := p.Embed(ctx, "Go")
	require.NoError(t, err)
	second, err := p.Embed(ctx, "Go")
	require.NoError(t, err)
	_, err = p.Embed(ctx, "go")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.callsFor("Go"))
	assert.Equal(t, 1, inner.callsFor("go"))
	assert.Equal(t, "counting-v1", p.ModelID())
}

func TestCachedProvider_WrapsFailures(t *testing.T) {
	inner := newCountingProvider()
	inner.fail["broken"] = true
	p, err := NewCachedProvider(inner, nil)
	require.NoError(t, err)

	_, err = p.Embed(context.Background(), "broken")
	require.Error(t, err)

	var embErr *EmbeddingError
	require.True(t, errors.As(err, &embErr))
	assert.Equal(t, "broken", embErr.Text)
	assert.Equal(t, "counting-v1", embErr.Model)
	assert.EqualError(t, errors.Unwrap(err), "provider down")

	// failures are not cached
	_, _ = p.Embed(context.Background(), "broken")
	assert.Equal(t, 2, inner.callsFor("broken"))
}

func TestCachedProvider_StoreTier(t *testing.T) {
	ctx := context.Background()
	store := newMapStore()
	require.NoError(t, store.Put(ctx, "counting-v1", "from store", []float64{9, 9}))

	registry := prometheus.NewRegistry()
	rec := metrics.NewRecorder(metrics.WithRegistry(registry))

	inner := newCountingProvider()
	p, err := NewCachedProvider(inner, nil, WithStore(store), WithMetrics(rec))
	require.NoError(t, err)

	vec, err := p.Embed(ctx, "from store")
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 9}, vec)
	assert.Equal(t, 0, inner.callsFor("from store"))

	// promoted into memory
	_, ok := p.Cache().Get("from store")
	assert.True(t, ok)

	_, err = p.Embed(ctx, "fresh")
	require.NoError(t, err)
	stored, found, err := store.Get(ctx, "counting-v1", "fresh")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []float64{5, 1}, stored)

	_, err = p.Embed(ctx, "fresh")
	require.NoError(t, err)

	assert.Equal(t, float64(1), cacheHits(t, registry, "store"))
	assert.Equal(t, float64(1), cacheHits(t, registry, "memory"))
	count, err := testutil.GatherAndCount(registry, "jobfit_engine_embedding_cache_misses_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func cacheHits(t *testing.T, registry *prometheus.Registry, tier string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "jobfit_engine_embedding_cache_hits_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "tier" && lp.GetValue() == tier {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestCachedProvider_StoreErrorFallsBackToProvider(t *testing.T) {
	store := newMapStore()
	store.getErr = errors.New("connection refused")

	inner := newCountingProvider()
	p, err := NewCachedProvider(inner, nil, WithStore(store))
	require.NoError(t, err)

	vec, err := p.Embed(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, vec)
	assert.Equal(t, 1, inner.callsFor("abc"))
}

func TestEmbeddingError_Message(t *testing.T) {
	err := &EmbeddingError{Text: "short", Model: "m", Cause: errors.New("boom")}
	assert.Equal(t, `embedding failed (model m) for "short": boom`, err.Error())

	long := &EmbeddingError{Text: string(make([]byte, 100)), Model: "m"}
	assert.Contains(t, long.Error(), "...")
}

func TestTextHash(t *testing.T) {
	assert.Equal(t, TextHash("python"), TextHash("python"))
	assert.NotEqual(t, TextHash("python"), TextHash("Python"))
	assert.Len(t, TextHash("python"), 64)
}

package matching

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-fit/internal/embedding"
	"github.com/jonathan/job-fit/internal/logger"
	"github.com/jonathan/job-fit/internal/types"
)

// Matcher runs the skill and experience matchers against one embedding provider
type Matcher struct {
	provider    embedding.Provider
	thresholds  Thresholds
	concurrency int
	log         *zap.Logger
	now         func() time.Time
}

// NewMatcher creates a matcher. Wrap provider in an embedding.CachedProvider to memoize vectors.
func NewMatcher(provider embedding.Provider, opts ...Option) *Matcher {
	m := &Matcher{
		provider:    provider,
		thresholds:  DefaultThresholds(),
		concurrency: 4,
		log:         zap.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Thresholds returns the cutoffs in use
func (m *Matcher) Thresholds() Thresholds {
	return m.thresholds
}

// EmbedStats counts embedding attempts made during one matcher call
type EmbedStats struct {
	Texts  int `json:"texts"`
	Failed int `json:"failed"`
}

// Add combines two stats
func (s EmbedStats) Add(other EmbedStats) EmbedStats {
	return EmbedStats{Texts: s.Texts + other.Texts, Failed: s.Failed + other.Failed}
}

// SuccessRatio is the share of texts that embedded successfully (1 when nothing was embedded)
func (s EmbedStats) SuccessRatio() float64 {
	if s.Texts == 0 {
		return 1.0
	}
	return float64(s.Texts-s.Failed) / float64(s.Texts)
}

// embedAll embeds texts in parallel. A text whose embedding fails is logged and left nil,
// which scores as 0 against everything. Only context cancellation aborts the call.
func (m *Matcher) embedAll(ctx context.Context, texts []string) ([][]float64, EmbedStats, error) {
	vectors := make([][]float64, len(texts))
	failed := make([]bool, len(texts))

	if err := m.embedBatch(ctx, texts, vectors); err != nil {
		return nil, EmbedStats{}, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for i, text := range texts {
		if vectors[i] != nil {
			continue
		}
		g.Go(func() error {
			vec, err := m.provider.Embed(gCtx, text)
			if err == nil {
				vectors[i] = vec
				return nil
			}
			if ctxErr := gCtx.Err(); ctxErr != nil {
				return ctxErr
			}

			var embErr *embedding.EmbeddingError
			if !errors.As(err, &embErr) {
				err = &embedding.EmbeddingError{Text: text, Model: m.provider.ModelID(), Cause: err}
			}
			m.log.Warn("embedding failed, scoring item as 0",
				zap.String("text", logger.TruncateForLog(text, 60)),
				zap.String("model", m.provider.ModelID()),
				zap.Error(err))
			failed[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, EmbedStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, EmbedStats{}, err
	}

	stats := EmbedStats{Texts: len(texts)}
	for _, f := range failed {
		if f {
			stats.Failed++
		}
	}
	return vectors, stats, nil
}

// embedBatch fills vectors in one pass when the provider batches. A failed batch is
// logged and leaves vectors empty so every text is retried on its own.
func (m *Matcher) embedBatch(ctx context.Context, texts []string, vectors [][]float64) error {
	batcher, ok := m.provider.(embedding.BatchProvider)
	if !ok || len(texts) < 2 {
		return nil
	}

	batch, err := batcher.EmbedBatch(ctx, texts)
	switch {
	case err == nil && len(batch) == len(texts):
		copy(vectors, batch)
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, embedding.ErrBatchUnsupported):
	default:
		m.log.Debug("batch embedding failed, embedding texts one at a time",
			zap.Int("texts", len(texts)),
			zap.String("model", m.provider.ModelID()),
			zap.Error(err))
	}
	return nil
}

// Warm embeds texts through the provider without scoring them, so that a cached
// provider holds them for later analyses.
func (m *Matcher) Warm(ctx context.Context, texts []string) (EmbedStats, error) {
	_, stats, err := m.embedAll(ctx, texts)
	return stats, err
}

// ProfileTexts lists every text the matchers embed for a profile
func ProfileTexts(profile *types.Profile) []string {
	var texts []string
	for _, skill := range profile.Skills {
		texts = append(texts, skill.CompositeText())
	}
	for _, exp := range profile.Experiences {
		texts = append(texts, exp.CompositeText())
		texts = append(texts, exp.Achievements...)
	}
	return texts
}

// JobTexts lists every text the matchers embed for a job
func JobTexts(job *types.Job) []string {
	texts := make([]string, 0, len(job.Requirements)+1)
	for _, req := range job.Requirements {
		texts = append(texts, req.Text)
	}
	return append(texts, JobContextText(job))
}

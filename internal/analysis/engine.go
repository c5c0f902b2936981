package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-fit/internal/ats"
	"github.com/jonathan/job-fit/internal/embedding"
	"github.com/jonathan/job-fit/internal/gaps"
	"github.com/jonathan/job-fit/internal/matching"
	"github.com/jonathan/job-fit/internal/metrics"
	"github.com/jonathan/job-fit/internal/scoring"
	"github.com/jonathan/job-fit/internal/strategy"
	"github.com/jonathan/job-fit/internal/types"
)

// refNamespace scopes the deterministic UUIDs generated for jobs and profiles without IDs
var refNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/jonathan/job-fit"))

// Engine runs the matching pipeline. It is safe for concurrent use; the only state shared
// between calls is the embedding cache.
type Engine struct {
	provider    *embedding.CachedProvider
	matcher     *matching.Matcher
	scorer      *scoring.Scorer
	thresholds  matching.Thresholds
	weights     scoring.Weights
	concurrency int
	cache       *embedding.Cache
	store       embedding.Store
	log         *zap.Logger
	metrics     *metrics.Recorder
	now         func() time.Time
}

// NewEngine validates the configuration and builds an engine around provider.
// A provider that is already an *embedding.CachedProvider keeps its memory cache
// and store, and picks up the engine's logger, metrics and store.
// Every configuration problem is reported as *ConfigurationError.
func NewEngine(provider embedding.Provider, opts ...Option) (*Engine, error) {
	e := &Engine{
		thresholds:  matching.DefaultThresholds(),
		weights:     scoring.DefaultWeights(),
		concurrency: 4,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	var cacheOpts []embedding.CachedOption
	if e.log != nil {
		cacheOpts = append(cacheOpts, embedding.WithLogger(e.log))
	} else {
		e.log = zap.NewNop()
	}
	if e.metrics != nil {
		cacheOpts = append(cacheOpts, embedding.WithMetrics(e.metrics))
	}
	if e.store != nil {
		cacheOpts = append(cacheOpts, embedding.WithStore(e.store))
	}

	if provider == nil {
		return nil, &ConfigurationError{Field: "provider", Message: "an embedding provider is required"}
	}
	if e.now == nil {
		return nil, &ConfigurationError{Field: "clock", Message: "clock must not be nil"}
	}
	if e.concurrency < 1 {
		return nil, &ConfigurationError{Field: "concurrency", Message: fmt.Sprintf("must be at least 1, got %d", e.concurrency)}
	}
	if err := validateThresholds(e.thresholds); err != nil {
		return nil, err
	}

	scorer, err := scoring.NewScorer(e.weights)
	if err != nil {
		return nil, &ConfigurationError{Field: "weights", Message: "weights are invalid", Cause: err}
	}
	e.scorer = scorer

	if cached, ok := provider.(*embedding.CachedProvider); ok && (e.cache == nil || e.cache == cached.Cache()) {
		e.provider = cached.With(cacheOpts...)
	} else {
		cached, err := embedding.NewCachedProvider(provider, e.cache, cacheOpts...)
		if err != nil {
			return nil, &ConfigurationError{Field: "cache", Message: "embedding cache does not fit the provider", Cause: err}
		}
		e.provider = cached
	}
	e.cache = e.provider.Cache()

	e.matcher = matching.NewMatcher(e.provider,
		matching.WithThresholds(e.thresholds),
		matching.WithConcurrency(e.concurrency),
		matching.WithLogger(e.log),
		matching.WithClock(e.now),
	)
	return e, nil
}

func validateThresholds(t matching.Thresholds) error {
	named := []struct {
		field string
		value float64
	}{
		{"must_have_threshold", t.MustHave},
		{"nice_to_have_threshold", t.NiceToHave},
		{"achievement_threshold", t.Achievement},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || n.value < 0 || n.value > 1 {
			return &ConfigurationError{Field: n.field, Message: fmt.Sprintf("must be in [0,1], got %v", n.value)}
		}
	}
	return nil
}

// ModelID is the embedding model the engine scores with
func (e *Engine) ModelID() string {
	return e.provider.ModelID()
}

// Cache exposes the shared embedding cache
func (e *Engine) Cache() *embedding.Cache {
	return e.cache
}

// Provider returns the cached embedding provider used by the engine
func (e *Engine) Provider() embedding.Provider {
	return e.provider
}

// Analyze runs skill matching, experience matching, scoring, gap analysis, strategy
// generation and ATS analysis for one job/profile pair. On any error, including
// cancellation, no partial result is returned.
func (e *Engine) Analyze(ctx context.Context, job *types.Job, profile *types.Profile) (*types.AnalysisResult, error) {
	report, err := e.AnalyzeDetailed(ctx, job, profile)
	if err != nil {
		return nil, err
	}
	return report.Result, nil
}

// Report is an AnalysisResult plus the debugging artifacts produced along the way
type Report struct {
	Result *types.AnalysisResult
	Matrix *matching.MatchMatrix
	Stats  matching.EmbedStats
}

// AnalyzeDetailed is Analyze that also returns the requirement-by-skill matrix and embedding stats
func (e *Engine) AnalyzeDetailed(ctx context.Context, job *types.Job, profile *types.Profile) (*Report, error) {
	start := time.Now()
	report, err := e.analyze(ctx, job, profile)
	e.metrics.RecordAnalysis(outcomeOf(err), time.Since(start))
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveCompatibility(report.Result.Compatibility.Overall)
	for _, g := range report.Result.Gaps {
		e.metrics.RecordGap(string(g.Importance))
	}
	return report, nil
}

func (e *Engine) analyze(ctx context.Context, job *types.Job, profile *types.Profile) (*Report, error) {
	if err := ValidateInput(job, profile); err != nil {
		return nil, err
	}

	log := e.log.With(zap.String("job", job.Title), zap.String("model", e.ModelID()))
	log.Debug("analysis started",
		zap.Int("requirements", len(job.Requirements)),
		zap.Int("skills", len(profile.Skills)),
		zap.Int("experiences", len(profile.Experiences)))

	skillReport, err := e.matcher.SkillReport(ctx, job, profile)
	if err != nil {
		return nil, err
	}
	expReport, err := e.matcher.ExperienceReport(ctx, job, profile)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compat := e.scorer.Score(job, profile, skillReport.Matches, expReport.Matches)
	gapList := gaps.IdentifyGaps(skillReport.Matches)
	plan := strategy.Generate(job, profile, compat, skillReport.Matches, expReport.Matches, gapList)
	atsReport := ats.Analyze(job, profile)

	stats := skillReport.Stats.Add(expReport.Stats)
	result := &types.AnalysisResult{
		JobRef:             JobRef(job),
		ProfileRef:         ProfileRef(profile),
		EmbeddingModel:     e.ModelID(),
		Compatibility:      compat,
		SkillMatches:       skillReport.Matches,
		ExperienceMatches:  expReport.Matches,
		Gaps:               gapList,
		Strategy:           plan,
		Confidence:         Confidence(stats, profile),
		ATSMatchRate:       atsReport.MatchRate,
		MissingKeywords:    atsReport.MissingKeywords,
		KeywordSuggestions: atsReport.Suggestions,
	}

	if stats.Failed > 0 {
		log.Warn("analysis completed with embedding failures",
			zap.Int("failed", stats.Failed),
			zap.Int("texts", stats.Texts))
	}
	log.Debug("analysis complete",
		zap.Float64("overall", compat.Overall),
		zap.String("match_level", string(compat.MatchLevel())),
		zap.Int("gaps", len(gapList)))

	return &Report{Result: result, Matrix: skillReport.Matrix, Stats: stats}, nil
}

// AnalyzeBatch analyzes several jobs against one profile concurrently, sharing the
// embedding cache. Results are in job order. The first failure cancels the batch and
// no results are returned.
func (e *Engine) AnalyzeBatch(ctx context.Context, jobs []*types.Job, profile *types.Profile) ([]*types.AnalysisResult, error) {
	results := make([]*types.AnalysisResult, len(jobs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			result, err := e.Analyze(gCtx, job, profile)
			if err != nil {
				return fmt.Errorf("job %d (%s): %w", i, jobTitle(job), err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Warm embeds every text an analysis of profile against jobs would need, filling the
// cache and any persistent store. Duplicate texts are embedded once.
func (e *Engine) Warm(ctx context.Context, profile *types.Profile, jobs ...*types.Job) (matching.EmbedStats, error) {
	var texts []string
	if profile != nil {
		texts = append(texts, matching.ProfileTexts(profile)...)
	}
	for _, job := range jobs {
		if job != nil {
			texts = append(texts, matching.JobTexts(job)...)
		}
	}

	seen := make(map[string]struct{}, len(texts))
	unique := texts[:0]
	for _, t := range texts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		unique = append(unique, t)
	}

	stats, err := e.matcher.Warm(ctx, unique)
	if err != nil {
		return matching.EmbedStats{}, err
	}
	e.log.Debug("cache warmed",
		zap.Int("texts", stats.Texts),
		zap.Int("failed", stats.Failed),
		zap.Int("cached", e.cache.Len()))
	return stats, nil
}

func jobTitle(job *types.Job) string {
	if job == nil {
		return "<nil>"
	}
	return job.Title
}

// ValidateInput rejects inputs with nothing to score
func ValidateInput(job *types.Job, profile *types.Profile) error {
	if job == nil {
		return &InvalidInputError{Field: "job", Message: "job is required"}
	}
	if len(job.Requirements) == 0 {
		return &InvalidInputError{Field: "job.requirements", Message: "job has no requirements"}
	}
	if profile == nil {
		return &InvalidInputError{Field: "profile", Message: "profile is required"}
	}
	if len(profile.Skills) == 0 && len(profile.Experiences) == 0 {
		return &InvalidInputError{Field: "profile", Message: "profile has no skills and no experiences"}
	}
	return nil
}

// Confidence reflects how much evidence backs the score: the share of texts that embedded
// successfully, scaled by how many skills (up to 5) and experiences (up to 3) the profile has.
func Confidence(stats matching.EmbedStats, profile *types.Profile) float64 {
	skills := math.Min(float64(len(profile.Skills)), 5) / 5
	exps := math.Min(float64(len(profile.Experiences)), 3) / 3
	c := stats.SuccessRatio() * (0.5 + 0.25*skills + 0.25*exps)
	return math.Round(c*100) / 100
}

// JobRef is the job's ID, or a stable UUID derived from company and title
func JobRef(job *types.Job) string {
	if job.ID != "" {
		return job.ID
	}
	return uuid.NewSHA1(refNamespace, []byte(job.Company.Name+"|"+job.Title)).String()
}

// ProfileRef is the profile's ID, or a stable UUID derived from name and title
func ProfileRef(profile *types.Profile) string {
	if profile.ID != "" {
		return profile.ID
	}
	return uuid.NewSHA1(refNamespace, []byte(profile.Name+"|"+profile.Title)).String()
}

func outcomeOf(err error) string {
	var invalid *InvalidInputError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &invalid):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}

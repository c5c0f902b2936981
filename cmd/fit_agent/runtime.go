package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-fit/internal/analysis"
	"github.com/jonathan/job-fit/internal/config"
	"github.com/jonathan/job-fit/internal/db"
	"github.com/jonathan/job-fit/internal/embedding"
	"github.com/jonathan/job-fit/internal/logger"
	"github.com/jonathan/job-fit/internal/metrics"
	"github.com/jonathan/job-fit/internal/types"
)

const redisEmbeddingTTL = 30 * 24 * time.Hour

// runtime owns everything a command needs to run analyses
type runtime struct {
	cfg      config.Config
	log      *zap.Logger
	metrics  *metrics.Recorder
	engine   *analysis.Engine
	database *db.DB
	closers  []func()
}

// newRuntime builds the logger, metrics, provider, persistent store and engine.
// provider may be nil, in which case cfg.Provider is resolved.
func newRuntime(ctx context.Context, cfg config.Config, provider embedding.Provider) (*runtime, error) {
	log, err := logger.New(cfg.LogJSON, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	rt := &runtime{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewRecorder(),
	}
	rt.closers = append(rt.closers, func() { _ = log.Sync() })

	if provider == nil {
		provider, err = embedding.NewProvider(ctx, cfg.Provider, cfg.Model, cfg.APIKey)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to create embedding provider: %w", err)
		}
		if c, ok := provider.(interface{ Close() error }); ok {
			rt.closers = append(rt.closers, func() { _ = c.Close() })
		}
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.database = database
		rt.closers = append(rt.closers, database.Close)
		if err := database.EnsureSchema(ctx); err != nil {
			rt.Close()
			return nil, err
		}
	}

	opts := append(cfg.EngineOptions(),
		analysis.WithLogger(log),
		analysis.WithMetrics(rt.metrics),
	)

	switch {
	case cfg.RedisURL != "":
		store, err := embedding.NewRedisStore(ctx, cfg.RedisURL, redisEmbeddingTTL)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, func() { _ = store.Close() })
		opts = append(opts, analysis.WithStore(store))
		log.Debug("using redis embedding store")
	case rt.database != nil:
		opts = append(opts, analysis.WithStore(rt.database.EmbeddingStore()))
		log.Debug("using postgres embedding store")
	}

	engine, err := analysis.NewEngine(provider, opts...)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.engine = engine

	log.Debug("engine ready",
		zap.String("model", engine.ModelID()),
		zap.Int("concurrency", cfg.Concurrency))
	return rt, nil
}

// saveResults persists results when a database is configured
func (rt *runtime) saveResults(ctx context.Context, results []*types.AnalysisResult) error {
	if rt.database == nil {
		return nil
	}
	for _, r := range results {
		id, err := rt.database.SaveAnalysis(ctx, r)
		if err != nil {
			return err
		}
		rt.log.Info("analysis saved",
			zap.String("id", id.String()),
			zap.String("job_ref", r.JobRef))
	}
	return nil
}

// Close writes the metrics textfile when configured and releases resources in reverse order
func (rt *runtime) Close() {
	if rt.cfg.MetricsFile != "" {
		if err := rt.metrics.WriteTextfile(rt.cfg.MetricsFile); err != nil {
			rt.log.Warn("failed to write metrics", zap.Error(err))
		}
	}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}

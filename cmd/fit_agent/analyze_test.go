package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-fit/internal/config"
	"github.com/jonathan/job-fit/internal/embedding"
	"github.com/jonathan/job-fit/internal/types"
)

func newHashRuntime(t *testing.T, cfg config.Config) *runtime {
	t.Helper()
	cfg.Provider = embedding.ProviderHash
	cfg = cfg.MergeWithDefaults(config.Config{})
	rt, err := newRuntime(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(rt.Close)
	return rt
}

func TestAnalyzeOne_WritesResult(t *testing.T) {
	dir := t.TempDir()
	rt := newHashRuntime(t, config.Config{
		Profile: writeFile(t, dir, "profile.yaml", testProfileYAML),
		Job:     writeFile(t, dir, "job.yaml", testJobYAML),
	})

	outPath := filepath.Join(dir, "out", "result.json")
	matrixPath := filepath.Join(dir, "out", "matrix.json")
	var stdout bytes.Buffer
	err := rt.analyzeOne(context.Background(), &stdout, analyzeOptions{
		output:         outPath,
		matrixOutput:   matrixPath,
		validateSchema: true,
	})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Scored Python Engineer")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var result map[string]any
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "hash-v1-256", result["embedding_model"])
	assert.Contains(t, result, "compatibility")
	assert.Len(t, result["skill_matches"], 2)

	_, err = os.Stat(matrixPath)
	assert.NoError(t, err)
}

func TestAnalyzeOne_Stdout(t *testing.T) {
	dir := t.TempDir()
	rt := newHashRuntime(t, config.Config{
		Profile: writeFile(t, dir, "profile.yaml", testProfileYAML),
		Job:     writeFile(t, dir, "job.yaml", testJobYAML),
	})

	var stdout bytes.Buffer
	require.NoError(t, rt.analyzeOne(context.Background(), &stdout, analyzeOptions{}))

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
	assert.Equal(t, "Python", result.SkillMatches[0].Requirement)
	assert.Contains(t, result.MissingKeywords, "Kafka")
}

func TestAnalyzeOne_InvalidJob(t *testing.T) {
	dir := t.TempDir()
	rt := newHashRuntime(t, config.Config{
		Profile: writeFile(t, dir, "profile.yaml", testProfileYAML),
		Job:     writeFile(t, dir, "job.yaml", "title: Empty\nrequirements: []\n"),
	})

	err := rt.analyzeOne(context.Background(), &bytes.Buffer{}, analyzeOptions{})
	assert.Error(t, err)
}

func TestAnalyzeBatch_WritesArrayInFileOrder(t *testing.T) {
	dir := t.TempDir()
	jobsDir := filepath.Join(dir, "jobs")
	require.NoError(t, os.MkdirAll(jobsDir, 0755))
	writeFile(t, jobsDir, "b.yaml", testJobYAML)
	writeFile(t, jobsDir, "a.json", `{
		"id": "job-a",
		"title": "Data Engineer",
		"requirements": [{"text": "Spark", "priority": "must_have", "category": "technical"}]
	}`)
	writeFile(t, jobsDir, "notes.txt", "ignored")

	rt := newHashRuntime(t, config.Config{
		Profile: writeFile(t, dir, "profile.yaml", testProfileYAML),
		JobsDir: jobsDir,
	})

	outPath := filepath.Join(dir, "batch.json")
	require.NoError(t, rt.analyzeBatch(context.Background(), &bytes.Buffer{}, outPath, true))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var results []types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 2)
	assert.Equal(t, "job-a", results[0].JobRef)
	assert.Equal(t, "Python", results[1].SkillMatches[0].Requirement)
}

func TestWarm_ReportsCount(t *testing.T) {
	dir := t.TempDir()
	rt := newHashRuntime(t, config.Config{
		Profile: writeFile(t, dir, "profile.yaml", testProfileYAML),
		Job:     writeFile(t, dir, "job.yaml", testJobYAML),
	})

	var stdout bytes.Buffer
	require.NoError(t, rt.warm(context.Background(), &stdout))
	// two skills, one experience, one achievement, two requirements, job context
	assert.Contains(t, stdout.String(), "Embedded 7 texts with hash-v1-256 (0 failed)")
	assert.Equal(t, 7, rt.engine.Cache().Len())
}

func TestRuntime_WritesMetricsOnClose(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "fit.prom")
	cfg := config.Config{
		Provider:    embedding.ProviderHash,
		Profile:     writeFile(t, dir, "profile.yaml", testProfileYAML),
		Job:         writeFile(t, dir, "job.yaml", testJobYAML),
		MetricsFile: metricsPath,
	}
	rt, err := newRuntime(context.Background(), cfg.MergeWithDefaults(config.Config{}), nil)
	require.NoError(t, err)

	require.NoError(t, rt.analyzeOne(context.Background(), &bytes.Buffer{}, analyzeOptions{}))
	rt.Close()

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "jobfit_engine_analyses_total")
}

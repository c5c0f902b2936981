package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-fit/internal/loader"
	"github.com/jonathan/job-fit/internal/observability"
)

var analyzeBatchCmd = &cobra.Command{
	Use:   "analyze-batch",
	Short: "Analyze a profile against every job in a directory",
	Long: `Loads every .json, .yaml and .yml job in --jobs-dir and analyzes them concurrently against one profile,
sharing a single embedding cache. Writes a JSON array of AnalysisResult in file-name order.

If any job fails, no results are written.`,
	RunE: runAnalyzeBatchCmd,
}

var (
	batchFlags          commonFlags
	batchJobsDir        string
	batchOutput         string
	batchValidateSchema bool
)

func init() {
	bindCommonFlags(analyzeBatchCmd, &batchFlags)
	analyzeBatchCmd.Flags().StringVarP(&batchJobsDir, "jobs-dir", "d", "", "Directory of structured jobs (JSON or YAML)")
	analyzeBatchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Path to output JSON array (stdout when empty)")
	analyzeBatchCmd.Flags().BoolVar(&batchValidateSchema, "validate-schema", false, "Fail if any result does not match the bundled schema")

	rootCmd.AddCommand(analyzeBatchCmd)
}

func runAnalyzeBatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &batchFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("jobs-dir") {
		cfg.JobsDir = batchJobsDir
		cfg.Job = ""
	}
	if cfg.JobsDir == "" {
		return fmt.Errorf("--jobs-dir is required (or set 'jobs_dir' in config file)")
	}

	rt, err := newRuntime(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	return rt.analyzeBatch(cmd.Context(), cmd.OutOrStdout(), batchOutput, batchValidateSchema)
}

func (rt *runtime) analyzeBatch(ctx context.Context, out io.Writer, output string, validateSchema bool) error {
	jobs, paths, err := loader.LoadJobsDir(rt.cfg.JobsDir)
	if err != nil {
		return err
	}
	profile, err := loader.LoadProfile(rt.cfg.Profile)
	if err != nil {
		return err
	}

	rt.log.Info("batch started", zap.Int("jobs", len(jobs)), zap.String("dir", rt.cfg.JobsDir))

	results, err := rt.engine.AnalyzeBatch(ctx, jobs, profile)
	if err != nil {
		return fmt.Errorf("batch analysis failed: %w", err)
	}

	if validateSchema {
		if err := validateResults(results); err != nil {
			return err
		}
	}

	if rt.cfg.Verbose {
		labels := make([]string, len(paths))
		for i, p := range paths {
			labels[i] = filepath.Base(p)
		}
		observability.NewPrinter(os.Stderr).PrintBatchSummary(labels, results)
	}

	if err := writeJSON(out, output, results); err != nil {
		return err
	}
	if err := rt.saveResults(ctx, results); err != nil {
		return err
	}

	rt.log.Info("batch complete",
		zap.Int("jobs", len(results)),
		zap.Int("cached_embeddings", rt.engine.Cache().Len()))
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-fit/internal/loader"
	"github.com/jonathan/job-fit/internal/types"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Pre-compute embeddings for a profile and jobs",
	Long: `Embeds every text an analysis would need and stores the vectors in the configured Redis or PostgreSQL store,
so later analyses with the same model skip the provider. Needs --redis-url or --db-url to be useful across runs.`,
	RunE: runEmbedCmd,
}

var (
	embedFlags   commonFlags
	embedJob     string
	embedJobsDir string
)

func init() {
	bindCommonFlags(embedCmd, &embedFlags)
	embedCmd.Flags().StringVarP(&embedJob, "job", "j", "", "Also embed this job")
	embedCmd.Flags().StringVarP(&embedJobsDir, "jobs-dir", "d", "", "Also embed every job in this directory")

	rootCmd.AddCommand(embedCmd)
}

func runEmbedCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &embedFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = embedJob
	}
	if cmd.Flags().Changed("jobs-dir") {
		cfg.JobsDir = embedJobsDir
	}
	rt, err := newRuntime(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.cfg.RedisURL == "" && rt.database == nil {
		rt.log.Warn("no persistent store configured, embeddings will not outlive this run")
	}
	return rt.warm(cmd.Context(), cmd.OutOrStdout())
}

func (rt *runtime) warm(ctx context.Context, out io.Writer) error {
	profile, err := loader.LoadProfile(rt.cfg.Profile)
	if err != nil {
		return err
	}

	var jobs []*types.Job
	if rt.cfg.Job != "" {
		job, err := loader.LoadJob(rt.cfg.Job)
		if err != nil {
			return err
		}
		jobs = append(jobs, job)
	}
	if rt.cfg.JobsDir != "" {
		dirJobs, _, err := loader.LoadJobsDir(rt.cfg.JobsDir)
		if err != nil {
			return err
		}
		jobs = append(jobs, dirJobs...)
	}

	stats, err := rt.engine.Warm(ctx, profile, jobs...)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}

	rt.log.Info("embeddings ready",
		zap.String("model", rt.engine.ModelID()),
		zap.Int("texts", stats.Texts),
		zap.Int("failed", stats.Failed))
	_, _ = fmt.Fprintf(out, "Embedded %d texts with %s (%d failed)\n", stats.Texts, rt.engine.ModelID(), stats.Failed)
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d texts failed to embed", stats.Failed, stats.Texts)
	}
	return nil
}

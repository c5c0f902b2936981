package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-fit/internal/loader"
	"github.com/jonathan/job-fit/internal/observability"
	"github.com/jonathan/job-fit/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a profile against one job",
	Long: `Scores a candidate profile against a structured job posting and writes an AnalysisResult JSON.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyzeCmd,
}

var (
	analyzeFlags          commonFlags
	analyzeJob            string
	analyzeOutput         string
	analyzeMatrixOutput   string
	analyzeValidateSchema bool
)

func init() {
	bindCommonFlags(analyzeCmd, &analyzeFlags)
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to structured job (JSON or YAML)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Path to output AnalysisResult JSON (stdout when empty)")
	analyzeCmd.Flags().StringVar(&analyzeMatrixOutput, "matrix", "", "Also write the requirement-by-skill similarity matrix to this path")
	analyzeCmd.Flags().BoolVar(&analyzeValidateSchema, "validate-schema", false, "Fail if the result does not match the bundled schema")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &analyzeFlags)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = analyzeJob
	}
	if cfg.Job == "" {
		return fmt.Errorf("--job is required (or set 'job' in config file)")
	}

	rt, err := newRuntime(cmd.Context(), cfg, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	return rt.analyzeOne(cmd.Context(), cmd.OutOrStdout(), analyzeOptions{
		output:         analyzeOutput,
		matrixOutput:   analyzeMatrixOutput,
		validateSchema: analyzeValidateSchema,
	})
}

type analyzeOptions struct {
	output         string
	matrixOutput   string
	validateSchema bool
}

func (rt *runtime) analyzeOne(ctx context.Context, out io.Writer, opts analyzeOptions) error {
	job, err := loader.LoadJob(rt.cfg.Job)
	if err != nil {
		return err
	}
	profile, err := loader.LoadProfile(rt.cfg.Profile)
	if err != nil {
		return err
	}

	var printer *observability.Printer
	if rt.cfg.Verbose {
		printer = observability.NewPrinter(os.Stderr)
		printer.PrintJob(job)
	}

	report, err := rt.engine.AnalyzeDetailed(ctx, job, profile)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	result := report.Result

	if opts.validateSchema {
		if err := validateResults([]*types.AnalysisResult{result}); err != nil {
			return err
		}
	}

	if printer != nil {
		printer.PrintAnalysis(result)
	}

	if err := writeJSON(out, opts.output, result); err != nil {
		return err
	}
	if opts.matrixOutput != "" {
		if err := writeJSON(out, opts.matrixOutput, report.Matrix); err != nil {
			return err
		}
	}

	if err := rt.saveResults(ctx, []*types.AnalysisResult{result}); err != nil {
		return err
	}

	rt.log.Info("analysis complete",
		zap.String("job", job.Title),
		zap.Float64("overall", result.Compatibility.Overall),
		zap.String("match_level", string(result.Compatibility.MatchLevel())),
		zap.Float64("confidence", result.Confidence))
	if opts.output != "" && opts.output != "-" {
		_, _ = fmt.Fprintf(out, "Scored %s: %.1f (%s), wrote %s\n",
			job.Title, result.Compatibility.Overall, result.Compatibility.MatchLevel(), opts.output)
	}
	return nil
}

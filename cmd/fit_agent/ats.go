package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit/internal/ats"
	"github.com/jonathan/job-fit/internal/loader"
	"github.com/jonathan/job-fit/internal/observability"
)

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Report ATS keyword coverage without embeddings",
	Long:  "Compares the job's technical skills and tools against the profile's skills and technologies by exact keyword, and suggests where to place the missing ones.",
	RunE:  runATSCmd,
}

var (
	atsProfile string
	atsJob     string
	atsOutput  string
	atsVerbose bool
)

func init() {
	atsCmd.Flags().StringVarP(&atsProfile, "profile", "p", "", "Path to candidate profile (required)")
	atsCmd.Flags().StringVarP(&atsJob, "job", "j", "", "Path to structured job (required)")
	atsCmd.Flags().StringVarP(&atsOutput, "out", "o", "", "Path to output ATS report JSON (stdout when empty)")
	atsCmd.Flags().BoolVarP(&atsVerbose, "verbose", "v", false, "Print a formatted report to stderr")

	if err := atsCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	if err := atsCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(atsCmd)
}

func runATSCmd(cmd *cobra.Command, _ []string) error {
	return runATS(cmd.OutOrStdout(), atsJob, atsProfile, atsOutput, atsVerbose)
}

func runATS(out io.Writer, jobPath, profilePath, output string, verbose bool) error {
	job, err := loader.LoadJob(jobPath)
	if err != nil {
		return err
	}
	profile, err := loader.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	report := ats.Analyze(job, profile)
	if verbose {
		observability.NewPrinter(os.Stderr).PrintATS(report)
	}
	return writeJSON(out, output, report)
}

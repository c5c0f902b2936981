// Package main provides the fit_agent CLI for scoring candidate profiles against jobs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fit_agent",
	Short: "Semantic job compatibility analysis",
	Long:  "fit_agent scores a candidate profile against structured job postings using embedding similarity, then reports qualification gaps, an application strategy and ATS keyword coverage.",
	// Errors are printed once by main
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-fit/internal/config"
	"github.com/jonathan/job-fit/internal/db"
	"github.com/jonathan/job-fit/internal/observability"
	"github.com/jonathan/job-fit/internal/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored analyses",
	Long:  "Lists analyses saved to PostgreSQL by earlier analyze runs, newest first.",
	RunE:  runHistoryCmd,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print one stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShowCmd,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDeleteCmd,
}

var (
	historyDatabaseURL string
	historyJobRef      string
	historyProfileRef  string
	historyMinOverall  float64
	historyLimit       int
	historyJSON        bool
	historyShowOutput  string
	historyShowPretty  bool
)

// analysisStore is the part of *db.DB the history subcommands use
type analysisStore interface {
	GetAnalysis(ctx context.Context, id uuid.UUID) (*types.AnalysisResult, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
}

func init() {
	historyCmd.PersistentFlags().StringVar(&historyDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	historyCmd.Flags().StringVar(&historyJobRef, "job-ref", "", "Only analyses of this job")
	historyCmd.Flags().StringVar(&historyProfileRef, "profile-ref", "", "Only analyses of this profile")
	historyCmd.Flags().Float64Var(&historyMinOverall, "min-overall", 0, "Only analyses scoring at least this overall")
	historyCmd.Flags().IntVar(&historyLimit, "limit", db.DefaultListLimit, "Maximum rows")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print JSON instead of a table")

	historyShowCmd.Flags().StringVarP(&historyShowOutput, "out", "o", "", "Write the analysis JSON to this path (default stdout)")
	historyShowCmd.Flags().BoolVar(&historyShowPretty, "pretty", false, "Print the analysis as formatted text instead of JSON")

	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func connectHistory(ctx context.Context) (*db.DB, error) {
	cfg := config.Config{DatabaseURL: historyDatabaseURL}
	cfg.ApplyEnv()
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("--db-url or %s is required", config.EnvDatabaseURL)
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	database, err := connectHistory(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	return listHistory(ctx, database, cmd.OutOrStdout(), db.AnalysisFilters{
		JobRef:     historyJobRef,
		ProfileRef: historyProfileRef,
		MinOverall: historyMinOverall,
		Limit:      historyLimit,
	}, historyJSON)
}

func listHistory(ctx context.Context, database *db.DB, out io.Writer, filters db.AnalysisFilters, asJSON bool) error {
	records, err := database.ListAnalyses(ctx, filters)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(out, "", records)
	}
	return printRecords(out, records)
}

func runHistoryShowCmd(cmd *cobra.Command, args []string) error {
	id, err := parseAnalysisID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := connectHistory(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	return showAnalysis(ctx, database, cmd.OutOrStdout(), id, historyShowOutput, historyShowPretty)
}

func runHistoryDeleteCmd(cmd *cobra.Command, args []string) error {
	id, err := parseAnalysisID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := connectHistory(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	return deleteAnalysis(ctx, database, cmd.OutOrStdout(), id)
}

func parseAnalysisID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid analysis id %q: %w", arg, err)
	}
	return id, nil
}

func showAnalysis(ctx context.Context, store analysisStore, out io.Writer, id uuid.UUID, output string, pretty bool) error {
	result, err := store.GetAnalysis(ctx, id)
	if err != nil {
		return err
	}
	if result == nil {
		return fmt.Errorf("analysis not found: %s", id)
	}

	if pretty {
		observability.NewPrinter(out).PrintAnalysis(result)
		return nil
	}
	return writeJSON(out, output, result)
}

func deleteAnalysis(ctx context.Context, store analysisStore, out io.Writer, id uuid.UUID) error {
	if err := store.DeleteAnalysis(ctx, id); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Deleted analysis %s\n", id)
	return err
}

func printRecords(out io.Writer, records []db.AnalysisRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "No analyses found")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tCREATED\tOVERALL\tLEVEL\tJOB\tPROFILE\tMODEL")
	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\t%s\t%s\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Overall, r.MatchLevel, r.JobRef, r.ProfileRef, r.EmbeddingModel)
	}
	return w.Flush()
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/srctally/srctally/internal/model"
	"github.com/srctally/srctally/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect run history",
	Long:  "Commands for listing and viewing recorded context and handoff runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st == nil {
			return eris.New("run history is disabled in configuration")
		}
		defer st.Close() //nolint:errcheck

		mode, _ := cmd.Flags().GetString("mode")
		root, _ := cmd.Flags().GetString("root")
		since, _ := cmd.Flags().GetDuration("since")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := store.RunFilter{Mode: mode, Root: root, Limit: limit}
		if since > 0 {
			filter.CreatedAfter = time.Now().Add(-since)
		}

		runs, err := st.ListRuns(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the full receipt of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		if st == nil {
			return eris.New("run history is disabled in configuration")
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	runsListCmd.Flags().String("mode", "", "filter by mode (context, handoff)")
	runsListCmd.Flags().String("root", "", "filter by scanned root path")
	runsListCmd.Flags().Duration("since", 0, "only runs newer than this window (e.g. 24h)")
	runsListCmd.Flags().Int("limit", 50, "max number of runs to display")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

// formatRunsList writes a tabular list of runs to w.
func formatRunsList(out io.Writer, runs []model.Run) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tMODE\tROOT\tFILES\tUSED\tBUDGET\tUTIL%\tCREATED")
	_, _ = fmt.Fprintln(w, "--\t----\t----\t-----\t----\t------\t-----\t-------")

	for _, r := range runs {
		root := r.Root
		if len(root) > 30 {
			root = "..." + root[len(root)-27:]
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.1f\t%s\n",
			truncateID(r.ID),
			r.Mode,
			root,
			r.Receipt.FileCount,
			r.Receipt.Plan.UsedTokens,
			formatBudgetCell(r.Receipt.Plan.BudgetTokens),
			r.Receipt.Utilization,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	_ = w.Flush()
}

func formatBudgetCell(budget int) string {
	if budget == model.UnlimitedBudget {
		return "unlimited"
	}
	return fmt.Sprintf("%d", budget)
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

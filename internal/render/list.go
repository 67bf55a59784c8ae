// Package render projects a finished SelectionPlan into its output forms:
// a tabular listing, a concatenated code bundle, and a JSON receipt. Renderers
// never mutate the plan; the bundle renderer is the only one that touches
// file contents.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/srctally/srctally/internal/model"
)

// List writes a table of the plan's included files followed by a budget
// summary line. It reads no file contents, so it is safe to run against a
// repository that has changed since the scan.
func List(out io.Writer, plan *model.SelectionPlan) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tMODULE\tLANG\tCODE\tTOKENS")
	_, _ = fmt.Fprintln(w, "----\t------\t----\t----\t------")

	for i := range plan.Included {
		rec := &plan.Included[i].Record
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			rec.Path, rec.Module, rec.Lang, rec.CodeLines, plan.Included[i].AccountedTokens)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\n%d files, %d / %s tokens", len(plan.Included), plan.UsedTokens, formatBudget(plan.BudgetTokens))
	if plan.BudgetTokens > 0 && plan.BudgetTokens != model.UnlimitedBudget {
		_, _ = fmt.Fprintf(out, " (%.1f%%)", plan.UtilizationPct())
	}
	_, _ = fmt.Fprintln(out)

	if n := len(plan.Excluded); n > 0 {
		_, _ = fmt.Fprintf(out, "%d files excluded", n)
		if plan.Truncated {
			_, _ = fmt.Fprint(out, " (selection truncated by budget)")
		}
		_, _ = fmt.Fprintln(out)
	}
	if plan.FallbackReason != "" {
		_, _ = fmt.Fprintf(out, "ranking: requested %s, used %s (%s)\n",
			plan.RankByRequested, plan.RankByEffective, plan.FallbackReason)
	}
	return nil
}

func formatBudget(budget int) string {
	if budget == model.UnlimitedBudget {
		return "unlimited"
	}
	return fmt.Sprintf("%d", budget)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/srctally/srctally/internal/model"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a repository into a file inventory",
	Long:  "Walks the tree, classifies lines per file, estimates token cost, and groups files into modules. Prints a table by default, or the full inventory as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot(args)
		if err != nil {
			return err
		}

		inv, caps, err := buildInventory(cmd, root)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Tool         model.ToolInfo           `json:"tool"`
				Root         string                   `json:"root"`
				Capabilities []model.CapabilityStatus `json:"capabilities"`
				Files        []model.FileRecord       `json:"files"`
			}{model.CurrentTool(), inv.Root, caps, inv.Records})
		}

		formatInventory(os.Stdout, inv)
		return nil
	},
}

func init() {
	addScanFlags(scanCmd)
	scanCmd.Flags().Bool("json", false, "emit the inventory as JSON")
	rootCmd.AddCommand(scanCmd)
}

// formatInventory writes the per-file table and totals.
func formatInventory(out io.Writer, inv *model.Inventory) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PATH\tMODULE\tLANG\tCODE\tCOMMENT\tBLANK\tTOKENS\tCOMMITS")
	_, _ = fmt.Fprintln(w, "----\t------\t----\t----\t-------\t-----\t------\t-------")

	var code, comment, blank, tokens int
	for i := range inv.Records {
		rec := &inv.Records[i]
		commits := "-"
		if rec.GitSignal != nil {
			commits = fmt.Sprintf("%d", rec.GitSignal.Commits)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			rec.Path, rec.Module, rec.Lang, rec.CodeLines, rec.CommentLines, rec.BlankLines, rec.EstimatedTokens, commits)
		code += rec.CodeLines
		comment += rec.CommentLines
		blank += rec.BlankLines
		tokens += rec.EstimatedTokens
	}
	_ = w.Flush()

	_, _ = fmt.Fprintf(out, "\n%d files, %d code / %d comment / %d blank lines, ~%d tokens\n",
		len(inv.Records), code, comment, blank, tokens)
}

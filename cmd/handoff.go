package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srctally/srctally/internal/handoff"
	"github.com/srctally/srctally/internal/pack"
	"github.com/srctally/srctally/internal/render"
)

var handoffCmd = &cobra.Command{
	Use:   "handoff [path]",
	Short: "Compose a four-artifact handoff bundle",
	Long:  "Runs selection once and derives manifest.json, map.jsonl, intelligence.json, and code.txt from it into the output directory.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		root, err := resolveRoot(args)
		if err != nil {
			return err
		}

		outDir, _ := cmd.Flags().GetString("out-dir")
		if outDir == "" {
			outDir = cfg.Handoff.OutDir
		}

		req, err := planRequestFromFlags(cmd, root, outDir)
		if err != nil {
			return err
		}

		inv, caps, err := buildInventory(cmd, root)
		if err != nil {
			return err
		}

		plan, err := pack.BuildPlan(inv, req)
		if err != nil {
			return err
		}

		compress, _ := cmd.Flags().GetBool("compress")
		treeDepth, _ := cmd.Flags().GetInt("tree-depth")
		if treeDepth == 0 {
			treeDepth = cfg.Handoff.TreeDepth
		}
		maxRisks, _ := cmd.Flags().GetInt("max-risks")
		if maxRisks == 0 {
			maxRisks = cfg.Handoff.MaxRisks
		}

		err = handoff.Compose(root, inv, plan, handoff.Options{
			OutDir:       outDir,
			Capabilities: caps,
			Bundle: render.BundleOptions{
				Compress:     compress,
				SoftMaxBytes: cfg.Context.SoftMaxBytes,
			},
			Intelligence: handoff.IntelligenceOptions{
				TreeDepth: treeDepth,
				MaxRisks:  maxRisks,
			},
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "handoff bundle written to %s (%d files, %d tokens)\n",
			outDir, len(plan.Included), plan.UsedTokens)

		recordRun(ctx, "handoff", root, plan)
		return nil
	},
}

func init() {
	addScanFlags(handoffCmd)
	handoffCmd.Flags().String("out-dir", "", "output directory for the four artifacts (default from config)")
	handoffCmd.Flags().String("budget", "", "token budget, e.g. 50000, 128k, 1m, unlimited")
	handoffCmd.Flags().String("strategy", "", "allocation strategy: greedy or spread")
	handoffCmd.Flags().String("rank-by", "", "value metric: code, tokens, churn, or hotspot")
	handoffCmd.Flags().Bool("compress", false, "strip blank lines from bundled file content")
	handoffCmd.Flags().Int("min-code-lines", 0, "exclude files below this many code lines")
	handoffCmd.Flags().StringSlice("exclude", nil, "glob patterns to exclude (repeatable)")
	handoffCmd.Flags().Int("tree-depth", 0, "directory depth of the intelligence tree skeleton")
	handoffCmd.Flags().Int("max-risks", 0, "cap on intelligence risk entries")
	rootCmd.AddCommand(handoffCmd)
}

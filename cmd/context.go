package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srctally/srctally/internal/model"
	"github.com/srctally/srctally/internal/pack"
	"github.com/srctally/srctally/internal/render"
)

var contextCmd = &cobra.Command{
	Use:   "context [path]",
	Short: "Pack a budget-bounded context selection",
	Long:  "Builds the inventory, ranks files under the chosen metric, selects within the token budget, and renders the selection as a listing, a concatenated bundle, or a JSON receipt.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		root, err := resolveRoot(args)
		if err != nil {
			return err
		}

		outFile, _ := cmd.Flags().GetString("out")
		req, err := planRequestFromFlags(cmd, root, outFile)
		if err != nil {
			return err
		}

		inv, _, err := buildInventory(cmd, root)
		if err != nil {
			return err
		}

		plan, err := pack.BuildPlan(inv, req)
		if err != nil {
			return err
		}

		out := io.Writer(os.Stdout)
		if outFile != "" {
			f, err := os.Create(outFile)
			if err != nil {
				return eris.Wrapf(err, "open output %s", outFile)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		recorded := plan
		mode, _ := cmd.Flags().GetString("output")
		switch mode {
		case "list":
			err = render.List(out, plan)
		case "json":
			err = render.Receipt(out, "context", plan)
		case "bundle":
			compress, _ := cmd.Flags().GetBool("compress")
			skipped, bundleErr := render.Bundle(out, root, plan, render.BundleOptions{
				Compress:     compress,
				SoftMaxBytes: cfg.Context.SoftMaxBytes,
			})
			err = bundleErr
			if len(skipped) > 0 {
				zap.L().Warn("some files could not be read", zap.Int("skipped", len(skipped)))
				// History reflects what actually happened; the plan passed to
				// renderers stays untouched.
				withReadErrs := *plan
				withReadErrs.Excluded = append(append([]model.ExcludedFile(nil), plan.Excluded...), skipped...)
				recorded = &withReadErrs
			}
		default:
			return eris.Errorf("unknown output mode %q (expected list, bundle, or json)", mode)
		}
		if err != nil {
			return err
		}

		recordRun(ctx, "context", root, recorded)
		return nil
	},
}

func init() {
	addScanFlags(contextCmd)
	contextCmd.Flags().String("budget", "", "token budget, e.g. 50000, 128k, 1m, unlimited (default from config)")
	contextCmd.Flags().String("strategy", "", "allocation strategy: greedy or spread")
	contextCmd.Flags().String("rank-by", "", "value metric: code, tokens, churn, or hotspot")
	contextCmd.Flags().String("output", "list", "output mode: list, bundle, or json")
	contextCmd.Flags().Bool("compress", false, "strip blank lines from bundled file content")
	contextCmd.Flags().String("out", "", "write output to a file instead of stdout")
	contextCmd.Flags().Int("min-code-lines", 0, "exclude files below this many code lines")
	contextCmd.Flags().StringSlice("exclude", nil, "glob patterns to exclude (repeatable)")
	rootCmd.AddCommand(contextCmd)
}

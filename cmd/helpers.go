package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srctally/srctally/internal/gitstat"
	"github.com/srctally/srctally/internal/model"
	"github.com/srctally/srctally/internal/pack"
	"github.com/srctally/srctally/internal/scanner"
	"github.com/srctally/srctally/internal/store"
)

// resolveRoot validates the optional positional path argument. A missing or
// non-directory path is a fatal input error.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", eris.Wrapf(err, "scan path %s", root)
	}
	if !info.IsDir() {
		return "", eris.Errorf("scan path %s is not a directory", root)
	}
	return root, nil
}

// addScanFlags registers the inventory flags shared by every scanning
// command. Flag values override config file defaults.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("module-roots", nil, "directories whose children are treated as modules (default from config)")
	cmd.Flags().Int("module-depth", 0, "path depth of module keys under a module root")
	cmd.Flags().Bool("no-git", false, "skip git history enrichment")
}

func scanOptions(cmd *cobra.Command) scanner.Options {
	opts := scanner.Options{
		ModuleRoots:  cfg.Scan.ModuleRoots,
		ModuleDepth:  cfg.Scan.ModuleDepth,
		MaxFileBytes: cfg.Scan.MaxFileBytes,
	}
	if roots, _ := cmd.Flags().GetStringSlice("module-roots"); len(roots) > 0 {
		opts.ModuleRoots = roots
	}
	if depth, _ := cmd.Flags().GetInt("module-depth"); depth > 0 {
		opts.ModuleDepth = depth
	}
	return opts
}

// buildInventory scans root and, when git history is usable, annotates the
// records with commit signals. The returned capability statuses always cover
// all probes so downstream manifests can explain degraded ranking.
func buildInventory(cmd *cobra.Command, root string) (*model.Inventory, []model.CapabilityStatus, error) {
	inv, err := scanner.Scan(root, scanOptions(cmd))
	if err != nil {
		return nil, nil, err
	}

	noGit, _ := cmd.Flags().GetBool("no-git")
	collector := gitstat.New(gitstat.Options{
		MaxCommits: cfg.Git.MaxCommits,
		Disabled:   cfg.Git.Disabled || noGit,
	})
	caps := collector.Capabilities(root)
	if gitstat.HistoryAvailable(caps) {
		collector.Annotate(inv)
	}
	return inv, caps, nil
}

// planRequestFromFlags assembles the allocator request from command flags
// and config defaults. outPath, when inside root, is normalized to a
// repo-relative path so the output sink excludes itself from selection.
func planRequestFromFlags(cmd *cobra.Command, root, outPath string) (pack.Request, error) {
	budgetStr, _ := cmd.Flags().GetString("budget")
	if budgetStr == "" {
		budgetStr = cfg.Context.Budget
	}
	budget, err := pack.ParseBudget(budgetStr)
	if err != nil {
		return pack.Request{}, err
	}

	strategyStr, _ := cmd.Flags().GetString("strategy")
	if strategyStr == "" {
		strategyStr = cfg.Context.Strategy
	}
	strategy, err := pack.ParseStrategy(strategyStr)
	if err != nil {
		return pack.Request{}, err
	}

	rankStr, _ := cmd.Flags().GetString("rank-by")
	if rankStr == "" {
		rankStr = cfg.Context.RankBy
	}
	rankBy, err := pack.ParseMetric(rankStr)
	if err != nil {
		return pack.Request{}, err
	}

	minCode, _ := cmd.Flags().GetInt("min-code-lines")
	if minCode == 0 {
		minCode = cfg.Context.MinCodeLines
	}

	exclude, _ := cmd.Flags().GetStringSlice("exclude")
	exclude = append(append([]string(nil), cfg.Context.Exclude...), exclude...)

	return pack.Request{
		BudgetTokens:    budget,
		Strategy:        strategy,
		RankBy:          rankBy,
		MinCodeLines:    minCode,
		OutputPath:      relToRoot(root, outPath),
		ExcludePatterns: exclude,
	}, nil
}

// relToRoot returns path relative to root with forward slashes, or "" when
// path is empty or outside root.
func relToRoot(root, path string) string {
	if path == "" {
		return ""
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}

// initStore opens the run-history database, creating its directory if
// needed. Returns nil without error when history is disabled.
func initStore(ctx context.Context) (store.Store, error) {
	if cfg.Store.Disabled {
		return nil, nil
	}
	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "create store dir %s", dir)
		}
	}
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// recordRun persists a receipt to run history. History is best-effort: a
// failure here is logged and never fails the command.
func recordRun(ctx context.Context, mode, root string, plan *model.SelectionPlan) {
	st, err := initStore(ctx)
	if err != nil {
		zap.L().Warn("run history unavailable", zap.Error(err))
		return
	}
	if st == nil {
		return
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.RecordRun(ctx, mode, root, model.NewReceipt(mode, plan)); err != nil {
		zap.L().Warn("record run failed", zap.Error(err))
	}
}

// Package pack is the context-packing engine: it ranks an inventory under a
// value metric, selects a bounded subset within a token budget, and freezes
// the outcome into a SelectionPlan that every renderer consumes unchanged.
package pack

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rotisserie/eris"

	"github.com/srctally/srctally/internal/model"
)

// Strategy names a budget-allocation algorithm.
type Strategy string

// Supported strategies.
const (
	StrategyGreedy Strategy = "greedy"
	StrategySpread Strategy = "spread"
)

// ParseStrategy validates a strategy name from the CLI or config.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyGreedy, StrategySpread:
		return Strategy(s), nil
	}
	return "", eris.Errorf("pack: unknown strategy %q (expected greedy or spread)", s)
}

// Request carries everything BuildPlan needs to derive a SelectionPlan.
type Request struct {
	BudgetTokens int
	Strategy     Strategy
	RankBy       Metric
	// MinCodeLines excludes files below this threshold before ranking.
	MinCodeLines int
	// OutputPath is the normalized repository-relative path (file or
	// directory) the rendered output will land in. It is excluded before
	// ranking so the tool can never pack its own output under any
	// strategy.
	OutputPath string
	// ExcludePatterns are opaque glob-style predicates from the
	// configuration layer. A pattern without a slash also matches against
	// the file's base name.
	ExcludePatterns []string
}

// BuildPlan derives the one immutable SelectionPlan for this invocation.
// Eligibility filtering runs before ranking; the chosen strategy then
// allocates the budget among eligible records. The plan's excluded list is
// sorted by ascending path for a canonical order. BuildPlan never reads
// file contents.
func BuildPlan(inv *model.Inventory, req Request) (*model.SelectionPlan, error) {
	if req.BudgetTokens < 0 {
		return nil, eris.Errorf("pack: negative budget %d", req.BudgetTokens)
	}

	resolved := Resolve(req.RankBy, inv)

	var eligible []model.FileRecord
	var excluded []model.ExcludedFile
	for i := range inv.Records {
		rec := inv.Records[i]
		if reason, detail := ineligible(&rec, &req); reason != "" {
			excluded = append(excluded, model.ExcludedFile{Path: rec.Path, Reason: reason, Detail: detail})
			continue
		}
		eligible = append(eligible, rec)
	}

	var included []model.IncludedFile
	var overBudget []model.ExcludedFile
	switch req.Strategy {
	case StrategySpread:
		included, overBudget = packSpread(eligible, req.BudgetTokens, resolved.Effective)
	default:
		included, overBudget = packGreedy(eligible, req.BudgetTokens, resolved.Effective)
	}
	excluded = append(excluded, overBudget...)
	sort.Slice(excluded, func(i, j int) bool { return excluded[i].Path < excluded[j].Path })

	used := 0
	for i := range included {
		used += included[i].AccountedTokens
	}

	return &model.SelectionPlan{
		BudgetTokens:    req.BudgetTokens,
		UsedTokens:      used,
		Strategy:        string(req.Strategy),
		RankByRequested: string(resolved.Requested),
		RankByEffective: string(resolved.Effective),
		FallbackReason:  resolved.FallbackReason,
		Included:        included,
		Excluded:        excluded,
		Truncated:       len(overBudget) > 0,
	}, nil
}

// ineligible reports the exclusion reason for a record, or "" when the
// record may enter ranking.
func ineligible(rec *model.FileRecord, req *Request) (reason, detail string) {
	if req.OutputPath != "" {
		if rec.Path == req.OutputPath || strings.HasPrefix(rec.Path, req.OutputPath+"/") {
			return model.ReasonOutputPath, "file lives in the output destination"
		}
	}
	for _, pattern := range req.ExcludePatterns {
		if matchPattern(pattern, rec.Path) {
			return model.ReasonPattern, "matched " + pattern
		}
	}
	if req.MinCodeLines > 0 && rec.CodeLines < req.MinCodeLines {
		return model.ReasonBelowMinSize, ""
	}
	return "", ""
}

func matchPattern(pattern, path string) bool {
	if ok, err := doublestar.Match(pattern, path); err == nil && ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		base := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			base = path[idx+1:]
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

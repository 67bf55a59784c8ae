package handoff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/srctally/srctally/internal/model"
)

// Intelligence sizing defaults. The summary is a bounded orientation
// artifact, not a second inventory; map.jsonl carries the full data.
const (
	DefaultTreeDepth    = 4
	DefaultMaxRisks     = 20
	DefaultIntelMaxByte = 64 * 1024
)

// IntelligenceOptions bounds the summary artifact.
type IntelligenceOptions struct {
	TreeDepth int
	MaxRisks  int
	// MaxTreeBytes caps the rendered tree; when exceeded the depth is
	// reduced until the skeleton fits, with a warning recording the cut.
	MaxTreeBytes int
}

func (o *IntelligenceOptions) defaults() {
	if o.TreeDepth <= 0 {
		o.TreeDepth = DefaultTreeDepth
	}
	if o.MaxRisks <= 0 {
		o.MaxRisks = DefaultMaxRisks
	}
	if o.MaxTreeBytes <= 0 {
		o.MaxTreeBytes = DefaultIntelMaxByte
	}
}

// BuildIntelligence derives the bounded summary from the full inventory:
// a directory skeleton with per-directory rollups, a capped risk list from
// git hotspots, and whole-tree totals. Missing enrichment surfaces as a
// warning, never an error.
func BuildIntelligence(inv *model.Inventory, opts IntelligenceOptions) model.IntelligenceSummary {
	opts.defaults()

	summary := model.IntelligenceSummary{
		Totals: buildTotals(inv),
	}

	depth := opts.TreeDepth
	tree := renderTree(inv, depth)
	for len(tree) > opts.MaxTreeBytes && depth > 1 {
		depth--
		tree = renderTree(inv, depth)
	}
	if depth < opts.TreeDepth {
		summary.Warnings = append(summary.Warnings,
			fmt.Sprintf("tree depth reduced from %d to %d to stay within the size cap", opts.TreeDepth, depth))
	}
	summary.Tree = tree
	summary.TreeDepth = depth

	risks, warning := buildRisks(inv, opts.MaxRisks)
	summary.Risks = risks
	if warning != "" {
		summary.Warnings = append(summary.Warnings, warning)
	}
	return summary
}

// dirStat accumulates rollups for one directory prefix.
type dirStat struct {
	files  int
	lines  int
	tokens int
}

// renderTree writes one line per directory up to depth, each with its
// recursive file, line, and token rollups. Paths sort ascending so the
// skeleton is stable.
func renderTree(inv *model.Inventory, depth int) string {
	stats := map[string]*dirStat{}
	rootStat := &dirStat{}

	for i := range inv.Records {
		rec := &inv.Records[i]
		rootStat.files++
		rootStat.lines += rec.TotalLines
		rootStat.tokens += rec.EstimatedTokens

		segs := strings.Split(rec.Path, "/")
		for d := 1; d < len(segs) && d <= depth; d++ {
			prefix := strings.Join(segs[:d], "/")
			s, ok := stats[prefix]
			if !ok {
				s = &dirStat{}
				stats[prefix] = s
			}
			s.files++
			s.lines += rec.TotalLines
			s.tokens += rec.EstimatedTokens
		}
	}

	dirs := make([]string, 0, len(stats))
	for d := range stats {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)

	var b strings.Builder
	fmt.Fprintf(&b, ". (files=%d lines=%d tokens=%d)\n", rootStat.files, rootStat.lines, rootStat.tokens)
	for _, d := range dirs {
		s := stats[d]
		indent := strings.Repeat("  ", strings.Count(d, "/")+1)
		name := d
		if idx := strings.LastIndex(d, "/"); idx >= 0 {
			name = d[idx+1:]
		}
		fmt.Fprintf(&b, "%s%s/ (files=%d lines=%d tokens=%d)\n", indent, name, s.files, s.lines, s.tokens)
	}
	return b.String()
}

// buildRisks ranks files by hotspot score, descending, tie-broken by path.
// When no record carries a git signal the list is empty and the returned
// warning names why.
func buildRisks(inv *model.Inventory, max int) ([]model.RiskEntry, string) {
	if !inv.HasGitSignals() {
		return nil, "risk list omitted: no git history signals in the inventory"
	}

	var risks []model.RiskEntry
	for i := range inv.Records {
		rec := &inv.Records[i]
		if rec.GitSignal == nil {
			continue
		}
		risks = append(risks, model.RiskEntry{
			Path:    rec.Path,
			Commits: rec.GitSignal.Commits,
			Lines:   rec.TotalLines,
			Score:   rec.GitSignal.Hotspot,
		})
	}
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].Score != risks[j].Score {
			return risks[i].Score > risks[j].Score
		}
		return risks[i].Path < risks[j].Path
	})
	if len(risks) > max {
		risks = risks[:max]
	}
	return risks, ""
}

func buildTotals(inv *model.Inventory) model.TreeTotals {
	totals := model.TreeTotals{Files: len(inv.Records)}
	langLines := map[string]int{}
	for i := range inv.Records {
		rec := &inv.Records[i]
		totals.CodeLines += rec.CodeLines
		totals.TotalLines += rec.TotalLines
		totals.Tokens += rec.EstimatedTokens
		langLines[rec.Lang] += rec.TotalLines
	}
	totals.LangCount = len(langLines)

	// Dominant language by total lines, ties broken by name for stability.
	best := ""
	for lang, lines := range langLines {
		if best == "" || lines > langLines[best] || (lines == langLines[best] && lang < best) {
			best = lang
		}
	}
	totals.DominantLang = best
	return totals
}

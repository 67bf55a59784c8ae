package pack

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/srctally/srctally/internal/model"
)

// Metric names a ranking signal for file value.
type Metric string

// Supported ranking metrics.
const (
	MetricCode    Metric = "code"
	MetricTokens  Metric = "tokens"
	MetricChurn   Metric = "churn"
	MetricHotspot Metric = "hotspot"
)

// ParseMetric validates a metric name from the CLI or config.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCode, MetricTokens, MetricChurn, MetricHotspot:
		return Metric(s), nil
	}
	return "", eris.Errorf("pack: unknown ranking metric %q (expected code, tokens, churn, or hotspot)", s)
}

// ResolvedMetric is the outcome of capability gating: the metric that will
// actually rank files, plus why it differs from the request when it does.
// Modeled as a tagged outcome rather than a boolean so every consumer can
// surface the reason without re-deriving it.
type ResolvedMetric struct {
	Requested      Metric
	Effective      Metric
	FallbackReason string
}

// Resolve decides the effective metric for an inventory. When churn or
// hotspot is requested and no record in the inventory carries a git signal,
// the whole inventory falls back to code lines; the decision is made once,
// never per file.
func Resolve(requested Metric, inv *model.Inventory) ResolvedMetric {
	if (requested == MetricChurn || requested == MetricHotspot) && !inv.HasGitSignals() {
		return ResolvedMetric{
			Requested:      requested,
			Effective:      MetricCode,
			FallbackReason: string(requested) + " requires git history; no file carries a git signal, ranking by code lines",
		}
	}
	return ResolvedMetric{Requested: requested, Effective: requested}
}

// valueOf computes a record's scalar value under a metric. A record without
// a git signal under churn/hotspot values as its code lines; the churn
// formula weights commits a thousandfold so code lines only break ties
// between equally-churned files.
func valueOf(rec *model.FileRecord, m Metric) int {
	switch m {
	case MetricTokens:
		return rec.EstimatedTokens
	case MetricChurn:
		if rec.GitSignal != nil {
			return rec.GitSignal.Commits*1000 + rec.CodeLines
		}
		return rec.CodeLines
	case MetricHotspot:
		if rec.GitSignal != nil {
			return rec.GitSignal.Hotspot
		}
		return rec.CodeLines
	default:
		return rec.CodeLines
	}
}

// sortByValue orders records by value descending, tie-broken by ascending
// path. The path tie-break is what makes selection a total order and
// therefore deterministic under every strategy.
func sortByValue(recs []model.FileRecord, m Metric) {
	sort.SliceStable(recs, func(i, j int) bool {
		vi, vj := valueOf(&recs[i], m), valueOf(&recs[j], m)
		if vi != vj {
			return vi > vj
		}
		return recs[i].Path < recs[j].Path
	})
}

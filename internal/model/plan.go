package model

import "math"

// UnlimitedBudget is the sentinel budget meaning "no ceiling".
const UnlimitedBudget = math.MaxInt

// Exclusion reason codes. These are stable output identifiers: consumers
// reading only a receipt or manifest must be able to reconstruct why a file
// is absent without re-running the tool.
const (
	ReasonOverBudget   = "over_budget"
	ReasonPattern      = "excluded_by_pattern"
	ReasonBelowMinSize = "below_min_size"
	ReasonOutputPath   = "output_path"
	ReasonReadError    = "read_error"
)

// IncludedFile is one selected record together with the token cost the
// allocator charged against the budget for it.
type IncludedFile struct {
	Record          FileRecord `json:"record"`
	AccountedTokens int        `json:"accounted_tokens"`
}

// ExcludedFile records a file the allocator or a renderer left out, with a
// stable reason code and an optional human detail.
type ExcludedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

// SelectionPlan is the single source of truth for what was selected. It is
// built exactly once per invocation and consumed read-only by every
// renderer, which is what keeps the rendered artifacts from disagreeing
// with each other.
type SelectionPlan struct {
	BudgetTokens    int            `json:"budget_tokens"`
	UsedTokens      int            `json:"used_tokens"`
	Strategy        string         `json:"strategy"`
	RankByRequested string         `json:"rank_by_requested"`
	RankByEffective string         `json:"rank_by_effective"`
	FallbackReason  string         `json:"fallback_reason,omitempty"`
	Included        []IncludedFile `json:"included"`
	Excluded        []ExcludedFile `json:"excluded"`
	Truncated       bool           `json:"truncated"`
}

// IncludedPaths returns the selected paths in render order.
func (p *SelectionPlan) IncludedPaths() []string {
	paths := make([]string, len(p.Included))
	for i := range p.Included {
		paths[i] = p.Included[i].Record.Path
	}
	return paths
}

// UtilizationPct returns used/budget as a percentage, 0 for a zero budget.
func (p *SelectionPlan) UtilizationPct() float64 {
	if p.BudgetTokens <= 0 {
		return 0
	}
	return float64(p.UsedTokens) / float64(p.BudgetTokens) * 100
}

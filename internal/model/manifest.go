package model

// Capability states for optional enrichment inputs.
const (
	CapabilityAvailable   = "available"
	CapabilityUnavailable = "unavailable"
	CapabilitySkipped     = "skipped"
)

// CapabilityStatus records whether an optional input (git, git history) was
// usable for this run, and why not when it was not.
type CapabilityStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ArtifactHash pairs a hash value with its algorithm.
type ArtifactHash struct {
	Algo string `json:"algo"`
	Hash string `json:"hash"`
}

// ArtifactEntry describes one file of the handoff bundle. The manifest's own
// entry carries no hash: it cannot contain a hash of itself.
type ArtifactEntry struct {
	Name        string        `json:"name"`
	Path        string        `json:"path"`
	Description string        `json:"description"`
	Bytes       int64         `json:"bytes"`
	Hash        *ArtifactHash `json:"hash,omitempty"`
}

// HandoffManifest is the index artifact of a handoff bundle. Its
// IncludedFiles list is copied verbatim from the SelectionPlan; selection is
// never recomputed here.
type HandoffManifest struct {
	SchemaVersion   int                `json:"schema_version"`
	Tool            ToolInfo           `json:"tool"`
	Mode            string             `json:"mode"`
	Root            string             `json:"root"`
	OutputDir       string             `json:"output_dir"`
	BudgetTokens    int                `json:"budget_tokens"`
	UsedTokens      int                `json:"used_tokens"`
	Utilization     float64            `json:"utilization_pct"`
	Strategy        string             `json:"strategy"`
	RankByRequested string             `json:"rank_by_requested"`
	RankByEffective string             `json:"rank_by_effective"`
	FallbackReason  string             `json:"fallback_reason,omitempty"`
	Capabilities    []CapabilityStatus `json:"capabilities"`
	Artifacts       []ArtifactEntry    `json:"artifacts"`
	IncludedFiles   []string           `json:"included_files"`
	Excluded        []ExcludedFile     `json:"excluded"`
	TotalFiles      int                `json:"total_files"`
	BundledFiles    int                `json:"bundled_files"`
	Truncated       bool               `json:"truncated"`
}

// RiskEntry is one item of the intelligence summary's risk list.
type RiskEntry struct {
	Path    string `json:"path"`
	Commits int    `json:"commits"`
	Lines   int    `json:"lines"`
	Score   int    `json:"score"`
}

// IntelligenceSummary is the bounded analytical artifact of a handoff
// bundle: a tree skeleton plus a capped risk list. It is deliberately never
// a second full inventory; map.jsonl owns that role.
type IntelligenceSummary struct {
	Tree      string      `json:"tree"`
	TreeDepth int         `json:"tree_depth"`
	Risks     []RiskEntry `json:"risks,omitempty"`
	Totals    TreeTotals  `json:"totals"`
	Warnings  []string    `json:"warnings,omitempty"`
}

// TreeTotals summarizes the whole inventory for the intelligence artifact.
type TreeTotals struct {
	Files        int    `json:"files"`
	CodeLines    int    `json:"code_lines"`
	TotalLines   int    `json:"total_lines"`
	Tokens       int    `json:"tokens"`
	LangCount    int    `json:"lang_count"`
	DominantLang string `json:"dominant_lang"`
}

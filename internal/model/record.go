package model

// GitSignal carries git-derived ranking inputs for a single file. It is
// attached to a FileRecord only when history collection ran and found the
// file; absence means the capability was degraded, not that the file is new.
type GitSignal struct {
	Commits int `json:"commits"`
	Hotspot int `json:"hotspot"`
}

// FileRecord is one unit of the scanned inventory: a source file with its
// composition counts and derived token estimate. Paths are repository
// relative and forward-slash normalized; a path is unique within an
// inventory and immutable once produced.
type FileRecord struct {
	Path            string     `json:"path"`
	Module          string     `json:"module"`
	Lang            string     `json:"lang"`
	CodeLines       int        `json:"code_lines"`
	CommentLines    int        `json:"comment_lines"`
	BlankLines      int        `json:"blank_lines"`
	TotalLines      int        `json:"total_lines"`
	Bytes           int        `json:"bytes"`
	EstimatedTokens int        `json:"estimated_tokens"`
	GitSignal       *GitSignal `json:"git_signal,omitempty"`
}

// Inventory is the ordered, deduplicated record set for one invocation.
// Records are sorted by ascending path.
type Inventory struct {
	Root    string       `json:"root"`
	Records []FileRecord `json:"records"`
}

// HasGitSignals reports whether at least one record carries a git signal.
// Metric fallback is decided once for the whole inventory, never per file.
func (inv *Inventory) HasGitSignals() bool {
	for i := range inv.Records {
		if inv.Records[i].GitSignal != nil {
			return true
		}
	}
	return false
}

// TotalTokens returns the estimated token sum across all records.
func (inv *Inventory) TotalTokens() int {
	total := 0
	for i := range inv.Records {
		total += inv.Records[i].EstimatedTokens
	}
	return total
}

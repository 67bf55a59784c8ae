package model

// SchemaVersion identifies the receipt and manifest wire format.
const SchemaVersion = 1

// ToolName and ToolVersion are embedded in every persisted artifact so a
// consumer can tell which producer wrote it. Artifacts carry no timestamps:
// identical inputs must reproduce byte-identical output.
const (
	ToolName    = "srctally"
	ToolVersion = "0.3.0"
)

// ToolInfo identifies the producing tool inside persisted artifacts.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// CurrentTool returns the ToolInfo for this build.
func CurrentTool() ToolInfo {
	return ToolInfo{Name: ToolName, Version: ToolVersion}
}

// Receipt is the machine-readable projection of a SelectionPlan: every plan
// field, no file content.
type Receipt struct {
	SchemaVersion int           `json:"schema_version"`
	Tool          ToolInfo      `json:"tool"`
	Mode          string        `json:"mode"`
	Plan          SelectionPlan `json:"plan"`
	FileCount     int           `json:"file_count"`
	Utilization   float64       `json:"utilization_pct"`
}

// NewReceipt builds a Receipt from a finished plan.
func NewReceipt(mode string, plan *SelectionPlan) Receipt {
	return Receipt{
		SchemaVersion: SchemaVersion,
		Tool:          CurrentTool(),
		Mode:          mode,
		Plan:          *plan,
		FileCount:     len(plan.Included),
		Utilization:   roundPct(plan.UtilizationPct()),
	}
}

// roundPct rounds to two decimals so receipts do not differ across
// platforms in float formatting noise.
func roundPct(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

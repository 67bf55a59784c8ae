package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncludedPathsPreservesOrder(t *testing.T) {
	t.Parallel()

	plan := &SelectionPlan{Included: []IncludedFile{
		{Record: FileRecord{Path: "b.go"}},
		{Record: FileRecord{Path: "a.go"}},
	}}
	assert.Equal(t, []string{"b.go", "a.go"}, plan.IncludedPaths())
	assert.Empty(t, (&SelectionPlan{}).IncludedPaths())
}

func TestUtilizationPct(t *testing.T) {
	t.Parallel()

	plan := &SelectionPlan{BudgetTokens: 200, UsedTokens: 50}
	assert.InDelta(t, 25.0, plan.UtilizationPct(), 0.001)

	assert.Zero(t, (&SelectionPlan{UsedTokens: 50}).UtilizationPct())
}

func TestHasGitSignals(t *testing.T) {
	t.Parallel()

	inv := &Inventory{Records: []FileRecord{{Path: "a.go"}}}
	assert.False(t, inv.HasGitSignals())

	inv.Records = append(inv.Records, FileRecord{Path: "b.go", GitSignal: &GitSignal{Commits: 1}})
	assert.True(t, inv.HasGitSignals())
}

func TestTotalTokens(t *testing.T) {
	t.Parallel()

	inv := &Inventory{Records: []FileRecord{
		{EstimatedTokens: 10},
		{EstimatedTokens: 15},
	}}
	assert.Equal(t, 25, inv.TotalTokens())
}

func TestNewReceipt(t *testing.T) {
	t.Parallel()

	plan := &SelectionPlan{
		BudgetTokens: 300,
		UsedTokens:   100,
		Included:     []IncludedFile{{Record: FileRecord{Path: "a.go"}, AccountedTokens: 100}},
	}
	r := NewReceipt("context", plan)

	assert.Equal(t, SchemaVersion, r.SchemaVersion)
	assert.Equal(t, ToolName, r.Tool.Name)
	assert.Equal(t, ToolVersion, r.Tool.Version)
	assert.Equal(t, "context", r.Mode)
	assert.Equal(t, 1, r.FileCount)
	assert.InDelta(t, 33.33, r.Utilization, 0.001, "percentage rounds to two decimals")
}

package handoff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srctally/srctally/internal/model"
)

func rec(path, lang string, code, total, tokens int) model.FileRecord {
	return model.FileRecord{Path: path, Lang: lang, CodeLines: code, TotalLines: total, EstimatedTokens: tokens}
}

func withHotspot(r model.FileRecord, commits int) model.FileRecord {
	r.GitSignal = &model.GitSignal{Commits: commits, Hotspot: r.TotalLines * commits}
	return r
}

func TestBuildIntelligenceTotals(t *testing.T) {
	t.Parallel()

	inv := &model.Inventory{Records: []model.FileRecord{
		rec("a.go", "Go", 80, 100, 50),
		rec("b.py", "Python", 10, 20, 10),
		rec("c.go", "Go", 30, 40, 20),
	}}
	got := BuildIntelligence(inv, IntelligenceOptions{})

	assert.Equal(t, 3, got.Totals.Files)
	assert.Equal(t, 120, got.Totals.CodeLines)
	assert.Equal(t, 160, got.Totals.TotalLines)
	assert.Equal(t, 80, got.Totals.Tokens)
	assert.Equal(t, 2, got.Totals.LangCount)
	assert.Equal(t, "Go", got.Totals.DominantLang)
}

func TestBuildIntelligenceTreeRollups(t *testing.T) {
	t.Parallel()

	inv := &model.Inventory{Records: []model.FileRecord{
		rec("pkg/a/one.go", "Go", 10, 10, 5),
		rec("pkg/a/two.go", "Go", 10, 10, 5),
		rec("pkg/b/three.go", "Go", 10, 10, 5),
		rec("root.go", "Go", 10, 10, 5),
	}}
	got := BuildIntelligence(inv, IntelligenceOptions{})

	assert.Contains(t, got.Tree, ". (files=4 lines=40 tokens=20)")
	assert.Contains(t, got.Tree, "pkg/ (files=3 lines=30 tokens=15)")
	assert.Contains(t, got.Tree, "a/ (files=2 lines=20 tokens=10)")
	assert.Contains(t, got.Tree, "b/ (files=1 lines=10 tokens=5)")
	assert.NotContains(t, got.Tree, "one.go", "skeleton lists directories, not files")
}

func TestBuildIntelligenceTreeDepthReducedUnderCap(t *testing.T) {
	t.Parallel()

	inv := &model.Inventory{}
	for _, p := range []string{
		"a/b/c/d/x.go", "e/f/g/h/y.go", "i/j/k/l/z.go",
	} {
		inv.Records = append(inv.Records, rec(p, "Go", 10, 10, 5))
	}
	got := BuildIntelligence(inv, IntelligenceOptions{TreeDepth: 4, MaxTreeBytes: 200})

	assert.Less(t, got.TreeDepth, 4)
	assert.LessOrEqual(t, len(got.Tree), 200)
	require.NotEmpty(t, got.Warnings)
	assert.Contains(t, got.Warnings[0], "tree depth reduced")
}

func TestBuildIntelligenceRisksRankedByScore(t *testing.T) {
	t.Parallel()

	inv := &model.Inventory{Records: []model.FileRecord{
		withHotspot(rec("cold.go", "Go", 10, 10, 5), 1),
		withHotspot(rec("hot.go", "Go", 100, 100, 50), 9),
		withHotspot(rec("warm.go", "Go", 50, 50, 25), 4),
		rec("unsigned.go", "Go", 10, 10, 5),
	}}
	got := BuildIntelligence(inv, IntelligenceOptions{MaxRisks: 2})

	require.Len(t, got.Risks, 2)
	assert.Equal(t, "hot.go", got.Risks[0].Path)
	assert.Equal(t, 900, got.Risks[0].Score)
	assert.Equal(t, "warm.go", got.Risks[1].Path)
	assert.Empty(t, got.Warnings)
}

func TestBuildIntelligenceRiskTieBreaksByPath(t *testing.T) {
	t.Parallel()

	inv := &model.Inventory{Records: []model.FileRecord{
		withHotspot(rec("z.go", "Go", 10, 10, 5), 2),
		withHotspot(rec("a.go", "Go", 10, 10, 5), 2),
	}}
	got := BuildIntelligence(inv, IntelligenceOptions{})

	require.Len(t, got.Risks, 2)
	assert.Equal(t, "a.go", got.Risks[0].Path)
	assert.Equal(t, "z.go", got.Risks[1].Path)
}

func TestBuildIntelligenceWarnsWithoutSignals(t *testing.T) {
	t.Parallel()

	inv := &model.Inventory{Records: []model.FileRecord{rec("a.go", "Go", 10, 10, 5)}}
	got := BuildIntelligence(inv, IntelligenceOptions{})

	assert.Empty(t, got.Risks)
	require.NotEmpty(t, got.Warnings)
	assert.True(t, strings.Contains(got.Warnings[0], "git history"))
}

func TestBuildIntelligenceDeterministic(t *testing.T) {
	t.Parallel()

	inv := &model.Inventory{Records: []model.FileRecord{
		withHotspot(rec("pkg/a.go", "Go", 10, 10, 5), 3),
		withHotspot(rec("pkg/b.go", "Go", 10, 10, 5), 3),
		rec("cmd/c.go", "Go", 10, 10, 5),
	}}
	first := BuildIntelligence(inv, IntelligenceOptions{})
	second := BuildIntelligence(inv, IntelligenceOptions{})
	assert.Equal(t, first, second)
}

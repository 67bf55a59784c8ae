package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srctally/srctally/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testReceipt(used, budget int) model.Receipt {
	plan := &model.SelectionPlan{
		BudgetTokens:    budget,
		UsedTokens:      used,
		Strategy:        "greedy",
		RankByRequested: "code",
		RankByEffective: "code",
		Included: []model.IncludedFile{
			{Record: model.FileRecord{Path: "main.go", Lang: "Go", CodeLines: 10}, AccountedTokens: used},
		},
	}
	return model.NewReceipt("context", plan)
}

func TestSQLite_RecordAndGetRun(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	created, err := st.RecordRun(ctx, "context", "/repo", testReceipt(100, 1000))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := st.GetRun(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "context", got.Mode)
	assert.Equal(t, "/repo", got.Root)
	assert.Equal(t, 100, got.Receipt.Plan.UsedTokens)
	assert.Equal(t, 1, got.Receipt.FileCount)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSQLite_GetRun_Missing(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLite_ListRuns_FilterByMode(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.RecordRun(ctx, "context", "/repo", testReceipt(50, 500))
	require.NoError(t, err)
	_, err = st.RecordRun(ctx, "handoff", "/repo", testReceipt(60, 500))
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, RunFilter{Mode: "handoff"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "handoff", runs[0].Mode)
}

func TestSQLite_ListRuns_FilterByRoot(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.RecordRun(ctx, "context", "/alpha", testReceipt(10, 100))
	require.NoError(t, err)
	_, err = st.RecordRun(ctx, "context", "/beta", testReceipt(20, 100))
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, RunFilter{Root: "/beta"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "/beta", runs[0].Root)
}

func TestSQLite_ListRuns_CreatedAfter(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.RecordRun(ctx, "context", "/repo", testReceipt(10, 100))
	require.NoError(t, err)

	runs, err := st.ListRuns(ctx, RunFilter{CreatedAfter: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	assert.Len(t, runs, 1)

	runs, err = st.ListRuns(ctx, RunFilter{CreatedAfter: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLite_ListRuns_LimitAndOffset(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	for range 5 {
		_, err := st.RecordRun(ctx, "context", "/repo", testReceipt(10, 100))
		require.NoError(t, err)
	}

	runs, err := st.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = st.ListRuns(ctx, RunFilter{Limit: 10, Offset: 3})
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSQLite_ListRuns_Empty(t *testing.T) {
	st := newTestSQLiteStore(t)

	runs, err := st.ListRuns(context.Background(), RunFilter{})
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSQLite_ReceiptRoundTripsThroughJSON(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	receipt := testReceipt(75, 1000)
	receipt.Plan.Excluded = []model.ExcludedFile{
		{Path: "vendor/lib.go", Reason: model.ReasonPattern, Detail: "matched vendor/**"},
	}
	receipt.Plan.Truncated = true

	created, err := st.RecordRun(ctx, "handoff", "/repo", receipt)
	require.NoError(t, err)

	got, err := st.GetRun(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt, got.Receipt)
}

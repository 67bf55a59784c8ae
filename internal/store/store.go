// Package store persists run history: one row per context or handoff
// invocation, carrying the full receipt. History is an audit trail only; no
// selection decision ever reads from it.
package store

import (
	"context"
	"time"

	"github.com/srctally/srctally/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Mode         string    `json:"mode,omitempty"`
	Root         string    `json:"root,omitempty"`
	CreatedAfter time.Time `json:"created_after,omitempty"`
	Limit        int       `json:"limit,omitempty"`
	Offset       int       `json:"offset,omitempty"`
}

// Store defines the run-history persistence interface.
type Store interface {
	RecordRun(ctx context.Context, mode, root string, receipt model.Receipt) (*model.Run, error)
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Package store defines the run history datastore. Callers depend on the
// Store interface so the smoke suite and CLI can be tested without a
// running database.
package store

import (
	"context"
	"time"

	domain "github.com/donaldgifford/chitai-gorod-qa/pkg/types"
)

// RunQuery defines optional filters for listing smoke runs.
type RunQuery struct {
	Trigger *string
	Passed  *bool
	Since   *time.Time
	Limit   int // default 20
	Offset  int
}

// Store defines all data access operations for smoke run history.
type Store interface {
	// Runs
	InsertRun(ctx context.Context, run *domain.SmokeRun) error
	CompleteRun(ctx context.Context, run *domain.SmokeRun) error
	GetRun(ctx context.Context, id string) (*domain.SmokeRun, error)
	ListRuns(ctx context.Context, opts *RunQuery) ([]domain.SmokeRun, int, error)
	PruneRuns(ctx context.Context, olderThan time.Duration) (int, error)

	// Check results
	InsertCheckResult(ctx context.Context, result *domain.CheckResult) error
	ListCheckResults(ctx context.Context, runID string) ([]domain.CheckResult, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
	Close()
}

// Package usecase implements the run ledger: audit rows for CLI runs, written
// atomically with their per-record failures.
package usecase

import (
	"context"

	"github.com/allisson/liquidity/internal/runlog/domain"
)

// RunRepository defines the interface for run ledger persistence operations.
type RunRepository interface {
	Create(ctx context.Context, run *domain.PipelineRun) error
	CreateFailure(ctx context.Context, failure *domain.RecordFailure) error
	ListRecent(ctx context.Context, limit int) ([]*domain.PipelineRun, error)
}

// RunLedger defines the interface for recording and inspecting pipeline runs.
// Ledger failures must never change a pipeline run's exit semantics; callers
// log and continue.
type RunLedger interface {
	// Record persists the run and its failures in one transaction.
	Record(ctx context.Context, run *domain.PipelineRun, failures []*domain.RecordFailure) error

	// ListRecent returns the most recent runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.PipelineRun, error)
}

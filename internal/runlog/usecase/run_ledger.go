package usecase

import (
	"context"

	"github.com/allisson/liquidity/internal/database"
	"github.com/allisson/liquidity/internal/runlog/domain"
)

// runLedger implements RunLedger on a SQL-backed RunRepository.
type runLedger struct {
	txManager database.TxManager
	repo      RunRepository
}

// NewRunLedger creates a new RunLedger.
func NewRunLedger(txManager database.TxManager, repo RunRepository) RunLedger {
	return &runLedger{
		txManager: txManager,
		repo:      repo,
	}
}

// Record persists the run and its failures in one transaction.
func (r *runLedger) Record(
	ctx context.Context,
	run *domain.PipelineRun,
	failures []*domain.RecordFailure,
) error {
	return r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		if err := r.repo.Create(txCtx, run); err != nil {
			return err
		}
		for _, failure := range failures {
			if err := r.repo.CreateFailure(txCtx, failure); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListRecent returns the most recent runs, newest first.
func (r *runLedger) ListRecent(ctx context.Context, limit int) ([]*domain.PipelineRun, error) {
	return r.repo.ListRecent(ctx, limit)
}

// noOpRunLedger is used when no database is configured.
type noOpRunLedger struct{}

// NewNoOpRunLedger creates a RunLedger that records nothing.
func NewNoOpRunLedger() RunLedger {
	return &noOpRunLedger{}
}

// Record does nothing when the ledger is disabled.
func (n *noOpRunLedger) Record(context.Context, *domain.PipelineRun, []*domain.RecordFailure) error {
	return nil
}

// ListRecent returns no runs when the ledger is disabled.
func (n *noOpRunLedger) ListRecent(context.Context, int) ([]*domain.PipelineRun, error) {
	return nil, nil
}

package usecase

import (
	"context"
	"time"

	"github.com/allisson/liquidity/internal/actuals/domain"
	"github.com/allisson/liquidity/internal/metrics"
)

// pullActualsUseCaseWithMetrics decorates PullActualsUseCase with metrics instrumentation.
type pullActualsUseCaseWithMetrics struct {
	next    PullActualsUseCase
	metrics metrics.PipelineMetrics
}

// NewPullActualsUseCaseWithMetrics wraps a PullActualsUseCase with metrics recording.
func NewPullActualsUseCaseWithMetrics(useCase PullActualsUseCase, m metrics.PipelineMetrics) PullActualsUseCase {
	return &pullActualsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Pull records metrics for actuals pull runs.
func (p *pullActualsUseCaseWithMetrics) Pull(
	ctx context.Context,
	params domain.PullActualsParams,
	key string,
) (*domain.PullSummary, error) {
	start := time.Now()
	summary, err := p.next.Pull(ctx, params, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "actuals", "pull", status)
	p.metrics.RecordDuration(ctx, "actuals", "pull", time.Since(start), status)
	if summary != nil {
		p.metrics.RecordRecords(ctx, "actuals", "pull", "fetched", int64(summary.Rows))
	}

	return summary, err
}

// pullBalancesUseCaseWithMetrics decorates PullBalancesUseCase with metrics instrumentation.
type pullBalancesUseCaseWithMetrics struct {
	next    PullBalancesUseCase
	metrics metrics.PipelineMetrics
}

// NewPullBalancesUseCaseWithMetrics wraps a PullBalancesUseCase with metrics recording.
func NewPullBalancesUseCaseWithMetrics(useCase PullBalancesUseCase, m metrics.PipelineMetrics) PullBalancesUseCase {
	return &pullBalancesUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Pull records metrics for opening-balance pull runs.
func (p *pullBalancesUseCaseWithMetrics) Pull(
	ctx context.Context,
	params domain.PullBalancesParams,
	key string,
) (*domain.BalancesSummary, error) {
	start := time.Now()
	summary, err := p.next.Pull(ctx, params, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "balances", "pull", status)
	p.metrics.RecordDuration(ctx, "balances", "pull", time.Since(start), status)
	if summary != nil {
		p.metrics.RecordRecords(ctx, "balances", "pull", "fetched", int64(summary.Rows))
	}

	return summary, err
}

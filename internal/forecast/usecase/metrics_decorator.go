package usecase

import (
	"context"
	"time"

	"github.com/allisson/liquidity/internal/forecast/domain"
	"github.com/allisson/liquidity/internal/metrics"
)

// generateUseCaseWithMetrics decorates GenerateUseCase with metrics instrumentation.
type generateUseCaseWithMetrics struct {
	next    GenerateUseCase
	metrics metrics.PipelineMetrics
}

// NewGenerateUseCaseWithMetrics wraps a GenerateUseCase with metrics recording.
func NewGenerateUseCaseWithMetrics(useCase GenerateUseCase, m metrics.PipelineMetrics) GenerateUseCase {
	return &generateUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Generate records metrics for forecast generation runs.
func (g *generateUseCaseWithMetrics) Generate(
	ctx context.Context,
	params domain.GenerateParams,
	key string,
) (*domain.GenerateSummary, error) {
	start := time.Now()
	summary, err := g.next.Generate(ctx, params, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	g.metrics.RecordOperation(ctx, "forecast", "generate", status)
	g.metrics.RecordDuration(ctx, "forecast", "generate", time.Since(start), status)
	if summary != nil {
		g.metrics.RecordRecords(ctx, "forecast", "generate", "generated", int64(summary.Rows))
	}

	return summary, err
}

// publishUseCaseWithMetrics decorates PublishUseCase with metrics instrumentation.
type publishUseCaseWithMetrics struct {
	next    PublishUseCase
	metrics metrics.PipelineMetrics
}

// NewPublishUseCaseWithMetrics wraps a PublishUseCase with metrics recording.
func NewPublishUseCaseWithMetrics(useCase PublishUseCase, m metrics.PipelineMetrics) PublishUseCase {
	return &publishUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Publish records metrics for forecast publish runs.
func (p *publishUseCaseWithMetrics) Publish(ctx context.Context, key string) (*domain.PublishSummary, error) {
	start := time.Now()
	summary, err := p.next.Publish(ctx, key)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "forecast", "publish", status)
	p.metrics.RecordDuration(ctx, "forecast", "publish", time.Since(start), status)
	if summary != nil {
		p.metrics.RecordRecords(ctx, "forecast", "publish", "delivered", int64(summary.Delivered))
		p.metrics.RecordRecords(ctx, "forecast", "publish", "failed", int64(summary.Failed))
	}

	return summary, err
}

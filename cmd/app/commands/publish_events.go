package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	forecastUsecase "github.com/allisson/liquidity/internal/forecast/usecase"
	internalHTTP "github.com/allisson/liquidity/internal/http"
	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
	runlogUsecase "github.com/allisson/liquidity/internal/runlog/usecase"
)

// PublishEventsParams are the CLI inputs of the publish-events command.
type PublishEventsParams struct {
	InputKey string `json:"input_key"`
}

// RunPublishEvents reads the forecast object and delivers one message per row.
// Row-level failures do not abort the run but make it exit non-zero, after the
// summary is written.
func RunPublishEvents(
	ctx context.Context,
	useCase forecastUsecase.PublishUseCase,
	ledger runlogUsecase.RunLedger,
	metricsServer *internalHTTP.MetricsServer,
	logger *slog.Logger,
	writer io.Writer,
	params PublishEventsParams,
) error {
	if params.InputKey == "" {
		return fmt.Errorf("input-key is required")
	}

	// The metrics server, when enabled, lives for the duration of the run.
	group, groupCtx := errgroup.WithContext(ctx)
	if metricsServer != nil {
		group.Go(func() error {
			return metricsServer.Start(groupCtx)
		})
	}

	startedAt := time.Now().UTC()
	run := newRun("publish-events", params, startedAt)

	summary, err := useCase.Publish(ctx, params.InputKey)

	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Status = runlogDomain.RunStatusFailed
		recordRun(ctx, ledger, logger, run, nil)
		shutdownMetricsServer(ctx, metricsServer, group, logger)
		return err
	}

	run.Processed = summary.Processed
	run.Delivered = summary.Delivered
	run.Failed = summary.Failed
	run.Status = runlogDomain.RunStatusSucceeded
	if summary.Failed > 0 {
		run.Status = runlogDomain.RunStatusPartial
	}

	failures := make([]*runlogDomain.RecordFailure, 0, len(summary.Failures))
	for _, failure := range summary.Failures {
		failures = append(failures, &runlogDomain.RecordFailure{
			ID:          uuid.Must(uuid.NewV7()),
			RunID:       run.ID,
			RecordRef:   failure.RecordRef,
			ErrorDetail: failure.ErrorDetail,
			CreatedAt:   run.FinishedAt,
		})
	}
	recordRun(ctx, ledger, logger, run, failures)

	fmt.Fprintf(writer, "processed=%d delivered=%d failed=%d\n",
		summary.Processed, summary.Delivered, summary.Failed)
	for _, failure := range summary.Failures {
		fmt.Fprintf(writer, "record %d: %s\n", failure.RecordRef, failure.ErrorDetail)
	}

	shutdownMetricsServer(ctx, metricsServer, group, logger)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d records failed", summary.Failed, summary.Processed)
	}
	return nil
}

// shutdownMetricsServer stops the run-scoped metrics server and waits for it.
func shutdownMetricsServer(
	ctx context.Context,
	metricsServer *internalHTTP.MetricsServer,
	group *errgroup.Group,
	logger *slog.Logger,
) {
	if metricsServer == nil {
		return
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown metrics server", slog.Any("error", err))
	}
	if err := group.Wait(); err != nil {
		logger.Error("metrics server stopped with error", slog.Any("error", err))
	}
}

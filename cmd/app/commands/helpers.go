// Package commands contains CLI command implementations for the pipeline.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/google/uuid"

	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
	runlogUsecase "github.com/allisson/liquidity/internal/runlog/usecase"
)

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// defaultObjectKey builds the date-partitioned bucket key used when the
// caller does not pass one (e.g., "forecast_plan/load_dt=2025-08-26/forecast_plan.csv").
func defaultObjectKey(prefix, filename string, now time.Time) string {
	return fmt.Sprintf("%s/load_dt=%s/%s", prefix, now.UTC().Format(time.DateOnly), filename)
}

// parseDate parses a YYYY-MM-DD command argument as a UTC date.
func parseDate(flag, value string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %q (expected YYYY-MM-DD)", flag, value)
	}
	return date, nil
}

// recordRun writes the audit row for a finished command. Ledger failures are
// logged and swallowed: the ledger never changes a run's exit semantics.
func recordRun(
	ctx context.Context,
	ledger runlogUsecase.RunLedger,
	logger *slog.Logger,
	run *runlogDomain.PipelineRun,
	failures []*runlogDomain.RecordFailure,
) {
	if err := ledger.Record(ctx, run, failures); err != nil {
		logger.Error("failed to record pipeline run", slog.Any("error", err))
	}
}

// newRun builds the audit row skeleton for a command invocation. Parameters
// that fail to encode are recorded as an empty object rather than failing the run.
func newRun(command string, parameters any, startedAt time.Time) *runlogDomain.PipelineRun {
	encoded, err := json.Marshal(parameters)
	if err != nil {
		encoded = []byte("{}")
	}
	return &runlogDomain.PipelineRun{
		ID:         uuid.Must(uuid.NewV7()),
		Command:    command,
		Parameters: string(encoded),
		StartedAt:  startedAt,
	}
}

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	actualsDomain "github.com/allisson/liquidity/internal/actuals/domain"
	actualsUsecase "github.com/allisson/liquidity/internal/actuals/usecase"
	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
	runlogUsecase "github.com/allisson/liquidity/internal/runlog/usecase"
)

// PullActualsParams are the CLI inputs of the pull-actuals command.
type PullActualsParams struct {
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	BusinessID   string   `json:"business_id"`
	Institutions []string `json:"institutions"`
	Items        int      `json:"items"`
	PageSize     int      `json:"page_size"`
	TargetRows   int      `json:"target_rows"`
	OutputKey    string   `json:"output_key"`
}

// RunPullActuals pulls sandbox banking transactions and writes them to the bucket.
func RunPullActuals(
	ctx context.Context,
	useCase actualsUsecase.PullActualsUseCase,
	ledger runlogUsecase.RunLedger,
	logger *slog.Logger,
	writer io.Writer,
	params PullActualsParams,
) error {
	startDate, err := parseDate("start-date", params.StartDate)
	if err != nil {
		return err
	}
	endDate, err := parseDate("end-date", params.EndDate)
	if err != nil {
		return err
	}

	outputKey := params.OutputKey
	if outputKey == "" {
		outputKey = defaultObjectKey("raw/plaid_transactions", "plaid_transactions_norm.csv", time.Now())
	}

	startedAt := time.Now().UTC()
	run := newRun("pull-actuals", params, startedAt)

	summary, err := useCase.Pull(ctx, actualsDomain.PullActualsParams{
		StartDate:    startDate,
		EndDate:      endDate,
		BusinessID:   params.BusinessID,
		Institutions: params.Institutions,
		ItemCount:    params.Items,
		PageSize:     params.PageSize,
		TargetRows:   params.TargetRows,
	}, outputKey)

	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Status = runlogDomain.RunStatusFailed
		recordRun(ctx, ledger, logger, run, nil)
		return err
	}

	run.Processed = summary.Fetched
	run.Delivered = summary.Rows
	run.Status = runlogDomain.RunStatusSucceeded
	recordRun(ctx, ledger, logger, run, nil)

	fmt.Fprintf(writer, "pulled %d transactions (%d after de-dup) from %d items to %s\n",
		summary.Fetched, summary.Rows, summary.Items, summary.OutputKey)
	return nil
}

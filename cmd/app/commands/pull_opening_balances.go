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

// PullOpeningBalancesParams are the CLI inputs of the pull-opening-balances command.
type PullOpeningBalancesParams struct {
	BusinessIDs []string `json:"business_ids"`
	OpeningDate string   `json:"opening_date"`
	Institution string   `json:"institution"`
	OutputKey   string   `json:"output_key"`
}

// RunPullOpeningBalances aggregates one opening balance per business and
// writes the rows to the bucket.
func RunPullOpeningBalances(
	ctx context.Context,
	useCase actualsUsecase.PullBalancesUseCase,
	ledger runlogUsecase.RunLedger,
	logger *slog.Logger,
	writer io.Writer,
	params PullOpeningBalancesParams,
) error {
	openingDate, err := parseDate("opening-date", params.OpeningDate)
	if err != nil {
		return err
	}

	outputKey := params.OutputKey
	if outputKey == "" {
		outputKey = defaultObjectKey("config/opening_balances", "opening_balances.csv", time.Now())
	}

	startedAt := time.Now().UTC()
	run := newRun("pull-opening-balances", params, startedAt)

	summary, err := useCase.Pull(ctx, actualsDomain.PullBalancesParams{
		BusinessIDs: params.BusinessIDs,
		OpeningDate: openingDate,
		Institution: params.Institution,
	}, outputKey)

	run.FinishedAt = time.Now().UTC()
	if err != nil {
		run.Status = runlogDomain.RunStatusFailed
		recordRun(ctx, ledger, logger, run, nil)
		return err
	}

	run.Processed = summary.Rows
	run.Delivered = summary.Rows
	run.Status = runlogDomain.RunStatusSucceeded
	recordRun(ctx, ledger, logger, run, nil)

	fmt.Fprintf(writer, "wrote %d opening balances to %s\n", summary.Rows, summary.OutputKey)
	return nil
}

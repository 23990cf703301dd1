package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	forecastDomain "github.com/allisson/liquidity/internal/forecast/domain"
	forecastUsecase "github.com/allisson/liquidity/internal/forecast/usecase"
	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
	runlogUsecase "github.com/allisson/liquidity/internal/runlog/usecase"
)

// GenerateForecastParams are the CLI inputs of the generate-forecast command.
type GenerateForecastParams struct {
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	Rows          int      `json:"rows"`
	BusinessIDs   []string `json:"business_ids"`
	Seed          int64    `json:"seed"`
	Scenario      string   `json:"scenario"`
	Currency      string   `json:"currency"`
	AdjustedRate  float64  `json:"adjusted_rate"`
	CancelledRate float64  `json:"cancelled_rate"`
	OutputKey     string   `json:"output_key"`
}

// RunGenerateForecast synthesizes forecast events and writes them to the bucket.
func RunGenerateForecast(
	ctx context.Context,
	useCase forecastUsecase.GenerateUseCase,
	ledger runlogUsecase.RunLedger,
	logger *slog.Logger,
	writer io.Writer,
	params GenerateForecastParams,
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
		outputKey = defaultObjectKey("forecast_plan", "forecast_plan.csv", time.Now())
	}

	startedAt := time.Now().UTC()
	run := newRun("generate-forecast", params, startedAt)

	summary, err := useCase.Generate(ctx, forecastDomain.GenerateParams{
		StartDate:     startDate,
		EndDate:       endDate,
		RowCount:      params.Rows,
		BusinessIDs:   params.BusinessIDs,
		Seed:          params.Seed,
		Scenario:      params.Scenario,
		Currency:      params.Currency,
		AdjustedRate:  params.AdjustedRate,
		CancelledRate: params.CancelledRate,
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

	fmt.Fprintf(writer, "generated %d forecast events to %s\n", summary.Rows, summary.OutputKey)
	return nil
}

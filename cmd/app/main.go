// Package main provides the entry point for the pipeline CLI.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/liquidity/cmd/app/commands"
	"github.com/allisson/liquidity/internal/app"
	"github.com/allisson/liquidity/internal/config"
	internalHTTP "github.com/allisson/liquidity/internal/http"
)

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Liquidity forecasting data pipeline",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "generate-forecast",
				Usage: "Synthesize forecast events and write them to the bucket as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "start-date",
						Required: true,
						Usage:    "First event date (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:     "end-date",
						Required: true,
						Usage:    "Last event date (YYYY-MM-DD)",
					},
					&cli.IntFlag{
						Name:  "rows",
						Value: 500,
						Usage: "Number of forecast events to generate",
					},
					&cli.StringSliceFlag{
						Name:  "business-id",
						Value: []string{"BIZ-001", "BIZ-002", "BIZ-003"},
						Usage: "Business IDs to distribute events across (repeatable)",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Value: 42,
						Usage: "Random seed; the same seed reproduces the same file",
					},
					&cli.StringFlag{
						Name:  "scenario",
						Value: "base",
						Usage: "Scenario label stamped on every row",
					},
					&cli.StringFlag{
						Name:  "currency",
						Value: "USD",
						Usage: "Currency code stamped on every row",
					},
					&cli.Float64Flag{
						Name:  "adjusted-rate",
						Value: 0.15,
						Usage: "Fraction of events with status ADJUSTED",
					},
					&cli.Float64Flag{
						Name:  "cancelled-rate",
						Value: 0.05,
						Usage: "Fraction of events with status CANCELLED",
					},
					&cli.StringFlag{
						Name:  "output-key",
						Usage: "Bucket key for the CSV (defaults to forecast_plan/load_dt=<today>/forecast_plan.csv)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer closeContainer(container, logger)

					useCase, err := container.GenerateUseCase(ctx)
					if err != nil {
						return err
					}
					ledger, err := container.RunLedger()
					if err != nil {
						return err
					}

					return commands.RunGenerateForecast(ctx, useCase, ledger, logger, os.Stdout,
						commands.GenerateForecastParams{
							StartDate:     cmd.String("start-date"),
							EndDate:       cmd.String("end-date"),
							Rows:          cmd.Int("rows"),
							BusinessIDs:   cmd.StringSlice("business-id"),
							Seed:          cmd.Int64("seed"),
							Scenario:      cmd.String("scenario"),
							Currency:      cmd.String("currency"),
							AdjustedRate:  cmd.Float64("adjusted-rate"),
							CancelledRate: cmd.Float64("cancelled-rate"),
							OutputKey:     cmd.String("output-key"),
						})
				},
			},
			{
				Name:  "publish-events",
				Usage: "Read a forecast CSV from the bucket and publish one message per row",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input-key",
						Required: true,
						Usage:    "Bucket key of the forecast CSV to publish",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer closeContainer(container, logger)

					useCase, err := container.PublishUseCase(ctx)
					if err != nil {
						return err
					}
					ledger, err := container.RunLedger()
					if err != nil {
						return err
					}

					var metricsServer *internalHTTP.MetricsServer
					if cfg.MetricsEnabled {
						metricsServer, err = container.MetricsServer()
						if err != nil {
							return err
						}
					}

					return commands.RunPublishEvents(ctx, useCase, ledger, metricsServer, logger, os.Stdout,
						commands.PublishEventsParams{
							InputKey: cmd.String("input-key"),
						})
				},
			},
			{
				Name:  "pull-actuals",
				Usage: "Pull sandbox banking transactions and write normalized rows to the bucket",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "start-date",
						Required: true,
						Usage:    "Start of the transaction window (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:     "end-date",
						Required: true,
						Usage:    "End of the transaction window (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "business-id",
						Value: "BIZ-001",
						Usage: "Business ID stamped on every row",
					},
					&cli.StringSliceFlag{
						Name:  "institution",
						Usage: "Sandbox institution IDs (defaults to the configured list)",
					},
					&cli.IntFlag{
						Name:  "items",
						Value: 2,
						Usage: "Number of sandbox items to create",
					},
					&cli.IntFlag{
						Name:  "target-rows",
						Value: 400,
						Usage: "Stop pulling items once this many transactions are fetched (0 = no limit)",
					},
					&cli.StringFlag{
						Name:  "output-key",
						Usage: "Bucket key for the CSV (defaults to raw/plaid_transactions/load_dt=<today>/plaid_transactions_norm.csv)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer closeContainer(container, logger)

					useCase, err := container.PullActualsUseCase(ctx)
					if err != nil {
						return err
					}
					ledger, err := container.RunLedger()
					if err != nil {
						return err
					}

					institutions := cmd.StringSlice("institution")
					if len(institutions) == 0 {
						institutions = cfg.PlaidInstitutions
					}

					return commands.RunPullActuals(ctx, useCase, ledger, logger, os.Stdout,
						commands.PullActualsParams{
							StartDate:    cmd.String("start-date"),
							EndDate:      cmd.String("end-date"),
							BusinessID:   cmd.String("business-id"),
							Institutions: institutions,
							Items:        cmd.Int("items"),
							PageSize:     cfg.PlaidPageSize,
							TargetRows:   cmd.Int("target-rows"),
							OutputKey:    cmd.String("output-key"),
						})
				},
			},
			{
				Name:  "pull-opening-balances",
				Usage: "Aggregate one opening balance per business and write them to the bucket",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "business-id",
						Required: true,
						Usage:    "Business IDs to pull balances for (repeatable)",
					},
					&cli.StringFlag{
						Name:     "opening-date",
						Required: true,
						Usage:    "Opening balance date (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "institution",
						Value: "ins_109508",
						Usage: "Sandbox institution ID to create items against",
					},
					&cli.StringFlag{
						Name:  "output-key",
						Usage: "Bucket key for the CSV (defaults to config/opening_balances/load_dt=<today>/opening_balances.csv)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer closeContainer(container, logger)

					useCase, err := container.PullBalancesUseCase(ctx)
					if err != nil {
						return err
					}
					ledger, err := container.RunLedger()
					if err != nil {
						return err
					}

					return commands.RunPullOpeningBalances(ctx, useCase, ledger, logger, os.Stdout,
						commands.PullOpeningBalancesParams{
							BusinessIDs: cmd.StringSlice("business-id"),
							OpeningDate: cmd.String("opening-date"),
							Institution: cmd.String("institution"),
							OutputKey:   cmd.String("output-key"),
						})
				},
			},
			{
				Name:  "list-runs",
				Usage: "Print the most recent pipeline runs from the run ledger",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Maximum number of runs to print",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()
					defer closeContainer(container, logger)

					ledger, err := container.RunLedger()
					if err != nil {
						return err
					}

					return commands.RunListRuns(ctx, ledger, os.Stdout, cmd.Int("limit"))
				},
			},
			{
				Name:  "migrate",
				Usage: "Run run ledger database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	runlogUsecase "github.com/allisson/liquidity/internal/runlog/usecase"
)

// RunListRuns prints the most recent pipeline runs, newest first.
func RunListRuns(
	ctx context.Context,
	ledger runlogUsecase.RunLedger,
	writer io.Writer,
	limit int,
) error {
	runs, err := ledger.ListRecent(ctx, limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(writer, "no pipeline runs recorded")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(writer, "%s %s %s processed=%d delivered=%d failed=%d duration=%s\n",
			run.StartedAt.UTC().Format(time.RFC3339),
			run.Command,
			run.Status,
			run.Processed,
			run.Delivered,
			run.Failed,
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
		)
	}
	return nil
}

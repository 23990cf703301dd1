// Package repository implements the tabular storage for forecast events.
package repository

import (
	"context"
	"fmt"

	"gocloud.dev/blob"

	"github.com/allisson/liquidity/internal/forecast/domain"
	"github.com/allisson/liquidity/internal/tabular"
)

// CSVEventSink writes forecast events as a CSV object in a blob bucket.
type CSVEventSink struct {
	bucket *blob.Bucket
}

// NewCSVEventSink returns a CSVEventSink backed by the given bucket.
func NewCSVEventSink(bucket *blob.Bucket) *CSVEventSink {
	return &CSVEventSink{bucket: bucket}
}

// WriteEvents streams the events to a CSV object under key, header included.
// The object is only committed when every row was written; a mid-stream
// failure aborts the write by cancelling the writer context.
func (s *CSVEventSink) WriteEvents(ctx context.Context, key string, events []*domain.ForecastEvent) error {
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer, err := tabular.NewWriter(writeCtx, s.bucket, key, domain.EventColumns)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := writer.Write(event.Record()); err != nil {
			cancel()
			_ = writer.Close()
			return fmt.Errorf("failed to write event %q: %w", event.ForecastID, err)
		}
	}

	return writer.Close()
}

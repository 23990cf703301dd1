package repository

import (
	"context"
	"io"

	"gocloud.dev/blob"

	"github.com/allisson/liquidity/internal/tabular"
)

// CSVEventSource reads forecast event rows back from a CSV object.
type CSVEventSource struct {
	bucket *blob.Bucket
}

// NewCSVEventSource returns a CSVEventSource backed by the given bucket.
func NewCSVEventSource(bucket *blob.Bucket) *CSVEventSource {
	return &CSVEventSource{bucket: bucket}
}

// Iterate reads the object under key row by row and calls fn with the
// zero-based row index and the record mapped onto the header columns.
// An error returned by fn stops the iteration and is returned as-is.
func (s *CSVEventSource) Iterate(ctx context.Context, key string, fn func(index int, record map[string]string) error) error {
	reader, err := tabular.NewReader(ctx, s.bucket, key)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	for index := 0; ; index++ {
		record, err := reader.Record()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(index, record); err != nil {
			return err
		}
	}
}

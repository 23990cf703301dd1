// Package tabular provides the flat tabular interchange format shared by the
// pipeline steps: CSV objects with a header row, stored in a gocloud blob bucket.
package tabular

import (
	"context"
	"fmt"

	"gocloud.dev/blob"

	// Register blob drivers for bucket URLs
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

// OpenBucket opens a blob bucket for the configured URL.
// Supports: gs://, file://, mem://
func OpenBucket(ctx context.Context, urlstr string) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}
	return bucket, nil
}

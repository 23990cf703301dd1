package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"gocloud.dev/blob"
)

// Writer streams CSV records into a bucket object. The header row is written
// on creation; the object is committed on Close.
type Writer struct {
	blobWriter *blob.Writer
	csvWriter  *csv.Writer
}

// NewWriter creates a CSV writer for the given bucket key and writes the header row.
func NewWriter(ctx context.Context, bucket *blob.Bucket, key string, header []string) (*Writer, error) {
	blobWriter, err := bucket.NewWriter(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create writer for %q: %w", key, err)
	}

	csvWriter := csv.NewWriter(blobWriter)
	if err := csvWriter.Write(header); err != nil {
		_ = blobWriter.Close()
		return nil, fmt.Errorf("failed to write header for %q: %w", key, err)
	}

	return &Writer{
		blobWriter: blobWriter,
		csvWriter:  csvWriter,
	}, nil
}

// Write appends one record to the CSV object.
func (w *Writer) Write(record []string) error {
	return w.csvWriter.Write(record)
}

// Close flushes buffered records and commits the object.
func (w *Writer) Close() error {
	w.csvWriter.Flush()
	if err := w.csvWriter.Error(); err != nil {
		_ = w.blobWriter.Close()
		return fmt.Errorf("failed to flush csv records: %w", err)
	}
	return w.blobWriter.Close()
}

// Reader iterates CSV records of a bucket object. The header row is consumed
// on creation; Record maps each subsequent row onto the header columns.
type Reader struct {
	blobReader *blob.Reader
	csvReader  *csv.Reader
	header     []string
}

// NewReader opens a CSV object in the bucket and reads its header row.
func NewReader(ctx context.Context, bucket *blob.Bucket, key string) (*Reader, error) {
	blobReader, err := bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", key, err)
	}

	csvReader := csv.NewReader(blobReader)
	// Rows with a deviating field count are surfaced to the schema layer,
	// not treated as a file-level failure.
	csvReader.FieldsPerRecord = -1

	header, err := csvReader.Read()
	if err != nil {
		_ = blobReader.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("failed to read header of %q: file is empty", key)
		}
		return nil, fmt.Errorf("failed to read header of %q: %w", key, err)
	}

	return &Reader{
		blobReader: blobReader,
		csvReader:  csvReader,
		header:     header,
	}, nil
}

// Header returns the column names of the object.
func (r *Reader) Header() []string {
	return r.header
}

// Record reads the next row and maps it onto the header columns.
// Columns missing from a short row are absent from the returned map.
// Returns io.EOF after the last row.
func (r *Reader) Record() (map[string]string, error) {
	row, err := r.csvReader.Read()
	if err != nil {
		return nil, err
	}

	record := make(map[string]string, len(r.header))
	for i, column := range r.header {
		if i < len(row) {
			record[column] = row[i]
		}
	}
	return record, nil
}

// Close releases the underlying object reader.
func (r *Reader) Close() error {
	return r.blobReader.Close()
}

// Package repository implements the tabular storage for pulled actuals and balances.
package repository

import (
	"context"
	"fmt"

	"gocloud.dev/blob"

	"github.com/allisson/liquidity/internal/actuals/domain"
	"github.com/allisson/liquidity/internal/tabular"
)

// CSVTransactionSink writes normalized transactions as a CSV object in a blob bucket.
type CSVTransactionSink struct {
	bucket *blob.Bucket
}

// NewCSVTransactionSink returns a CSVTransactionSink backed by the given bucket.
func NewCSVTransactionSink(bucket *blob.Bucket) *CSVTransactionSink {
	return &CSVTransactionSink{bucket: bucket}
}

// WriteTransactions streams the transactions to a CSV object under key.
func (s *CSVTransactionSink) WriteTransactions(
	ctx context.Context,
	key string,
	transactions []*domain.Transaction,
) error {
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer, err := tabular.NewWriter(writeCtx, s.bucket, key, domain.TransactionColumns)
	if err != nil {
		return err
	}

	for _, transaction := range transactions {
		if err := writer.Write(transaction.Record()); err != nil {
			cancel()
			_ = writer.Close()
			return fmt.Errorf("failed to write transaction %q: %w", transaction.ActualID, err)
		}
	}

	return writer.Close()
}

// CSVBalanceSink writes opening balances as a CSV object in a blob bucket.
type CSVBalanceSink struct {
	bucket *blob.Bucket
}

// NewCSVBalanceSink returns a CSVBalanceSink backed by the given bucket.
func NewCSVBalanceSink(bucket *blob.Bucket) *CSVBalanceSink {
	return &CSVBalanceSink{bucket: bucket}
}

// WriteBalances streams the balances to a CSV object under key.
func (s *CSVBalanceSink) WriteBalances(ctx context.Context, key string, balances []*domain.OpeningBalance) error {
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer, err := tabular.NewWriter(writeCtx, s.bucket, key, domain.BalanceColumns)
	if err != nil {
		return err
	}

	for _, balance := range balances {
		if err := writer.Write(balance.Record()); err != nil {
			cancel()
			_ = writer.Close()
			return fmt.Errorf("failed to write balance for %q: %w", balance.BusinessID, err)
		}
	}

	return writer.Close()
}

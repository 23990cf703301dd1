// Package usecase defines the interfaces and implementations for the actuals
// pull steps. Use cases orchestrate the banking gateway and the tabular
// storage to pull sandbox transactions and opening balances.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/liquidity/internal/actuals/domain"
)

// BankingGateway defines the provider capabilities the pull use cases depend on.
type BankingGateway interface {
	CreateSandboxItem(ctx context.Context, institutionID string) (string, error)
	ListAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error)
	ListTransactions(
		ctx context.Context,
		accessToken string,
		start, end time.Time,
		offset, count int,
	) (*domain.TransactionPage, error)
}

// TransactionSink defines the interface for persisting normalized transactions.
type TransactionSink interface {
	WriteTransactions(ctx context.Context, key string, transactions []*domain.Transaction) error
}

// BalanceSink defines the interface for persisting opening balances.
type BalanceSink interface {
	WriteBalances(ctx context.Context, key string, balances []*domain.OpeningBalance) error
}

// PullActualsUseCase defines the interface for the actuals pull step.
type PullActualsUseCase interface {
	// Pull creates sandbox items, collects their transactions for the date
	// range, normalizes and de-duplicates them, and writes the tabular object
	// under key. Upstream failures abort the run unmodified.
	Pull(ctx context.Context, params domain.PullActualsParams, key string) (*domain.PullSummary, error)
}

// PullBalancesUseCase defines the interface for the opening-balance pull step.
type PullBalancesUseCase interface {
	// Pull creates one sandbox item per business, sums current balances across
	// its accounts and writes one row per business under key.
	Pull(ctx context.Context, params domain.PullBalancesParams, key string) (*domain.BalancesSummary, error)
}

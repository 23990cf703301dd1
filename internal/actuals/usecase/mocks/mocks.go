// Package mocks provides mock implementations for testing actuals use cases.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	actualsDomain "github.com/allisson/liquidity/internal/actuals/domain"
)

// MockBankingGateway is a mock implementation of BankingGateway for testing.
type MockBankingGateway struct {
	mock.Mock
}

// NewMockBankingGateway creates a MockBankingGateway with expectations asserted on cleanup.
func NewMockBankingGateway(t *testing.T) *MockBankingGateway {
	m := &MockBankingGateway{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CreateSandboxItem mocks the CreateSandboxItem method of BankingGateway.
func (m *MockBankingGateway) CreateSandboxItem(ctx context.Context, institutionID string) (string, error) {
	args := m.Called(ctx, institutionID)
	return args.String(0), args.Error(1)
}

// ListAccounts mocks the ListAccounts method of BankingGateway.
func (m *MockBankingGateway) ListAccounts(ctx context.Context, accessToken string) ([]actualsDomain.BankAccount, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]actualsDomain.BankAccount), args.Error(1)
}

// ListTransactions mocks the ListTransactions method of BankingGateway.
func (m *MockBankingGateway) ListTransactions(
	ctx context.Context,
	accessToken string,
	start, end time.Time,
	offset, count int,
) (*actualsDomain.TransactionPage, error) {
	args := m.Called(ctx, accessToken, start, end, offset, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actualsDomain.TransactionPage), args.Error(1)
}

// MockTransactionSink is a mock implementation of TransactionSink for testing.
type MockTransactionSink struct {
	mock.Mock

	// Written captures the transactions of the last accepted write.
	Written []*actualsDomain.Transaction
}

// NewMockTransactionSink creates a MockTransactionSink with expectations asserted on cleanup.
func NewMockTransactionSink(t *testing.T) *MockTransactionSink {
	m := &MockTransactionSink{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WriteTransactions mocks the WriteTransactions method of TransactionSink.
func (m *MockTransactionSink) WriteTransactions(
	ctx context.Context,
	key string,
	transactions []*actualsDomain.Transaction,
) error {
	args := m.Called(ctx, key, transactions)
	if err := args.Error(0); err != nil {
		return err
	}
	m.Written = transactions
	return nil
}

// MockBalanceSink is a mock implementation of BalanceSink for testing.
type MockBalanceSink struct {
	mock.Mock

	// Written captures the balances of the last accepted write.
	Written []*actualsDomain.OpeningBalance
}

// NewMockBalanceSink creates a MockBalanceSink with expectations asserted on cleanup.
func NewMockBalanceSink(t *testing.T) *MockBalanceSink {
	m := &MockBalanceSink{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WriteBalances mocks the WriteBalances method of BalanceSink.
func (m *MockBalanceSink) WriteBalances(
	ctx context.Context,
	key string,
	balances []*actualsDomain.OpeningBalance,
) error {
	args := m.Called(ctx, key, balances)
	if err := args.Error(0); err != nil {
		return err
	}
	m.Written = balances
	return nil
}

// MockPullActualsUseCase is a mock implementation of PullActualsUseCase for testing.
type MockPullActualsUseCase struct {
	mock.Mock
}

// NewMockPullActualsUseCase creates a MockPullActualsUseCase with expectations asserted on cleanup.
func NewMockPullActualsUseCase(t *testing.T) *MockPullActualsUseCase {
	m := &MockPullActualsUseCase{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Pull mocks the Pull method of PullActualsUseCase.
func (m *MockPullActualsUseCase) Pull(
	ctx context.Context,
	params actualsDomain.PullActualsParams,
	key string,
) (*actualsDomain.PullSummary, error) {
	args := m.Called(ctx, params, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actualsDomain.PullSummary), args.Error(1)
}

// MockPullBalancesUseCase is a mock implementation of PullBalancesUseCase for testing.
type MockPullBalancesUseCase struct {
	mock.Mock
}

// NewMockPullBalancesUseCase creates a MockPullBalancesUseCase with expectations asserted on cleanup.
func NewMockPullBalancesUseCase(t *testing.T) *MockPullBalancesUseCase {
	m := &MockPullBalancesUseCase{}
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Pull mocks the Pull method of PullBalancesUseCase.
func (m *MockPullBalancesUseCase) Pull(
	ctx context.Context,
	params actualsDomain.PullBalancesParams,
	key string,
) (*actualsDomain.BalancesSummary, error) {
	args := m.Called(ctx, params, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actualsDomain.BalancesSummary), args.Error(1)
}

package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	actualsDomain "github.com/allisson/liquidity/internal/actuals/domain"
	"github.com/allisson/liquidity/internal/actuals/usecase/mocks"
	apperrors "github.com/allisson/liquidity/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testPullParams() actualsDomain.PullActualsParams {
	return actualsDomain.PullActualsParams{
		StartDate:    time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC),
		BusinessID:   "BIZ-001",
		Institutions: []string{"ins_109508", "ins_116834"},
		ItemCount:    2,
		PageSize:     500,
	}
}

func bankTransaction(id, accountID string, amount float64) actualsDomain.BankTransaction {
	return actualsDomain.BankTransaction{
		TransactionID:  id,
		AccountID:      accountID,
		Amount:         amount,
		Currency:       "USD",
		PostDate:       "2025-08-01",
		Name:           "ACH Transfer",
		Categories:     []string{"Transfer", "Debit"},
		PaymentChannel: "online",
		Type:           "special",
	}
}

func TestPullActualsUseCase_Pull(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_NormalizesAndWrites", func(t *testing.T) {
		mockGateway := mocks.NewMockBankingGateway(t)
		mockSink := mocks.NewMockTransactionSink(t)
		params := testPullParams()
		params.ItemCount = 1
		accounts := []actualsDomain.BankAccount{{ID: "acc-1", Name: "Plaid Checking"}}
		page := &actualsDomain.TransactionPage{
			Transactions: []actualsDomain.BankTransaction{
				bankTransaction("txn-1", "acc-1", 25.50),
				bankTransaction("txn-2", "acc-1", -1000),
			},
			Total: 2,
		}

		mockGateway.On("CreateSandboxItem", ctx, "ins_109508").Return("access-1", nil)
		mockGateway.On("ListAccounts", ctx, "access-1").Return(accounts, nil)
		mockGateway.On("ListTransactions", ctx, "access-1", params.StartDate, params.EndDate, 0, 500).
			Return(page, nil)
		mockSink.On("WriteTransactions", ctx, "actuals.csv", mock.Anything).Return(nil)

		useCase := NewPullActualsUseCase(mockGateway, mockSink, testLogger())
		summary, err := useCase.Pull(ctx, params, "actuals.csv")

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Items)
		assert.Equal(t, 2, summary.Fetched)
		assert.Equal(t, 2, summary.Rows)
		assert.Equal(t, "actuals.csv", summary.OutputKey)

		require.Len(t, mockSink.Written, 2)
		outflow := mockSink.Written[0]
		assert.Equal(t, "txn-1_acc-1", outflow.ActualID)
		assert.Equal(t, "BIZ-001", outflow.BusinessID)
		assert.Equal(t, "Plaid Checking", outflow.AccountName)
		assert.Equal(t, actualsDomain.DirectionOutflow, outflow.Direction)
		assert.Equal(t, "25.50", outflow.Amount.StringFixed(2))
		assert.Equal(t, "Transfer", outflow.CategoryL1)
		assert.Equal(t, "Debit", outflow.CategoryL2)

		inflow := mockSink.Written[1]
		assert.Equal(t, actualsDomain.DirectionInflow, inflow.Direction)
		assert.Equal(t, "1000.00", inflow.Amount.StringFixed(2))
	})

	t.Run("Success_DeduplicatesByActualID", func(t *testing.T) {
		mockGateway := mocks.NewMockBankingGateway(t)
		mockSink := mocks.NewMockTransactionSink(t)
		params := testPullParams()
		params.ItemCount = 1
		page := &actualsDomain.TransactionPage{
			Transactions: []actualsDomain.BankTransaction{
				bankTransaction("txn-1", "acc-1", 10),
				bankTransaction("txn-1", "acc-1", 10),
				bankTransaction("txn-1", "acc-2", 10),
			},
			Total: 3,
		}

		mockGateway.On("CreateSandboxItem", ctx, "ins_109508").Return("access-1", nil)
		mockGateway.On("ListAccounts", ctx, "access-1").Return([]actualsDomain.BankAccount{}, nil)
		mockGateway.On("ListTransactions", ctx, "access-1", params.StartDate, params.EndDate, 0, 500).
			Return(page, nil)
		mockSink.On("WriteTransactions", ctx, "actuals.csv", mock.Anything).Return(nil)

		useCase := NewPullActualsUseCase(mockGateway, mockSink, testLogger())
		summary, err := useCase.Pull(ctx, params, "actuals.csv")

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Fetched)
		assert.Equal(t, 2, summary.Rows)
	})

	t.Run("Success_PaginatesUntilTotal", func(t *testing.T) {
		mockGateway := mocks.NewMockBankingGateway(t)
		mockSink := mocks.NewMockTransactionSink(t)
		params := testPullParams()
		params.ItemCount = 1
		params.PageSize = 2
		firstPage := &actualsDomain.TransactionPage{
			Transactions: []actualsDomain.BankTransaction{
				bankTransaction("txn-1", "acc-1", 10),
				bankTransaction("txn-2", "acc-1", 20),
			},
			Total: 3,
		}
		secondPage := &actualsDomain.TransactionPage{
			Transactions: []actualsDomain.BankTransaction{
				bankTransaction("txn-3", "acc-1", 30),
			},
			Total: 3,
		}

		mockGateway.On("CreateSandboxItem", ctx, "ins_109508").Return("access-1", nil)
		mockGateway.On("ListAccounts", ctx, "access-1").Return([]actualsDomain.BankAccount{}, nil)
		mockGateway.On("ListTransactions", ctx, "access-1", params.StartDate, params.EndDate, 0, 2).
			Return(firstPage, nil)
		mockGateway.On("ListTransactions", ctx, "access-1", params.StartDate, params.EndDate, 2, 2).
			Return(secondPage, nil)
		mockSink.On("WriteTransactions", ctx, "actuals.csv", mock.Anything).Return(nil)

		useCase := NewPullActualsUseCase(mockGateway, mockSink, testLogger())
		summary, err := useCase.Pull(ctx, params, "actuals.csv")

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Rows)
	})

	t.Run("Success_TargetRowsStopsItemLoop", func(t *testing.T) {
		mockGateway := mocks.NewMockBankingGateway(t)
		mockSink := mocks.NewMockTransactionSink(t)
		params := testPullParams()
		params.ItemCount = 5
		params.TargetRows = 2
		page := &actualsDomain.TransactionPage{
			Transactions: []actualsDomain.BankTransaction{
				bankTransaction("txn-1", "acc-1", 10),
				bankTransaction("txn-2", "acc-1", 20),
			},
			Total: 2,
		}

		mockGateway.On("CreateSandboxItem", ctx, "ins_109508").Return("access-1", nil).Once()
		mockGateway.On("ListAccounts", ctx, "access-1").Return([]actualsDomain.BankAccount{}, nil).Once()
		mockGateway.On("ListTransactions", ctx, "access-1", params.StartDate, params.EndDate, 0, 500).
			Return(page, nil).Once()
		mockSink.On("WriteTransactions", ctx, "actuals.csv", mock.Anything).Return(nil)

		useCase := NewPullActualsUseCase(mockGateway, mockSink, testLogger())
		summary, err := useCase.Pull(ctx, params, "actuals.csv")

		require.NoError(t, err)
		assert.Equal(t, 1, summary.Items)
		assert.Equal(t, 2, summary.Rows)
	})

	t.Run("Error_InvalidRange", func(t *testing.T) {
		mockGateway := mocks.NewMockBankingGateway(t)
		mockSink := mocks.NewMockTransactionSink(t)
		params := testPullParams()
		params.EndDate = params.StartDate.AddDate(0, 0, -1)

		useCase := NewPullActualsUseCase(mockGateway, mockSink, testLogger())
		summary, err := useCase.Pull(ctx, params, "actuals.csv")

		assert.Nil(t, summary)
		require.ErrorIs(t, err, actualsDomain.ErrInvalidRange)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_UpstreamFailureAborts", func(t *testing.T) {
		mockGateway := mocks.NewMockBankingGateway(t)
		mockSink := mocks.NewMockTransactionSink(t)
		params := testPullParams()
		upstreamErr := &actualsDomain.UpstreamAPIError{StatusCode: 400, Code: "INVALID_INSTITUTION", Message: "unknown institution"}

		mockGateway.On("CreateSandboxItem", ctx, "ins_109508").Return("", upstreamErr)

		useCase := NewPullActualsUseCase(mockGateway, mockSink, testLogger())
		summary, err := useCase.Pull(ctx, params, "actuals.csv")

		assert.Nil(t, summary)
		require.ErrorIs(t, err, apperrors.ErrUpstream)

		var apiErr *actualsDomain.UpstreamAPIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, "INVALID_INSTITUTION", apiErr.Code)
		mockSink.AssertNotCalled(t, "WriteTransactions", ctx, "actuals.csv", mock.Anything)
	})
}

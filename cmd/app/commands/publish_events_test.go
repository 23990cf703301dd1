package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/liquidity/internal/forecast/domain"
	forecastMocks "github.com/allisson/liquidity/internal/forecast/usecase/mocks"
	runlogDomain "github.com/allisson/liquidity/internal/runlog/domain"
	runlogMocks "github.com/allisson/liquidity/internal/runlog/usecase/mocks"
)

func TestRunPublishEvents(t *testing.T) {
	ctx := context.Background()
	inputKey := "forecast_plan/load_dt=2025-08-26/forecast_plan.csv"

	t.Run("Success_AllDelivered", func(t *testing.T) {
		useCase := forecastMocks.NewMockPublishUseCase(t)
		ledger := runlogMocks.NewMockRunLedger(t)

		useCase.On("Publish", ctx, inputKey).Return(&domain.PublishSummary{
			Processed: 500,
			Delivered: 500,
		}, nil)
		ledger.On("Record", ctx, mock.MatchedBy(func(run *runlogDomain.PipelineRun) bool {
			return run.Command == "publish-events" &&
				run.Status == runlogDomain.RunStatusSucceeded &&
				run.Processed == 500 && run.Delivered == 500 && run.Failed == 0
		}), mock.MatchedBy(func(failures []*runlogDomain.RecordFailure) bool {
			return len(failures) == 0
		})).Return(nil)

		var out bytes.Buffer
		err := RunPublishEvents(ctx, useCase, ledger, nil, testLogger(), &out, PublishEventsParams{InputKey: inputKey})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "processed=500 delivered=500 failed=0")
	})

	t.Run("Error_PartialFailureExitsNonZero", func(t *testing.T) {
		useCase := forecastMocks.NewMockPublishUseCase(t)
		ledger := runlogMocks.NewMockRunLedger(t)

		useCase.On("Publish", ctx, inputKey).Return(&domain.PublishSummary{
			Processed: 500,
			Delivered: 498,
			Failed:    2,
			Failures: []domain.PublishFailure{
				{RecordRef: 17, ErrorDetail: "amount is not numeric"},
				{RecordRef: 231, ErrorDetail: "business_id is required"},
			},
		}, nil)
		ledger.On("Record", ctx, mock.MatchedBy(func(run *runlogDomain.PipelineRun) bool {
			return run.Status == runlogDomain.RunStatusPartial && run.Failed == 2
		}), mock.MatchedBy(func(failures []*runlogDomain.RecordFailure) bool {
			return len(failures) == 2 &&
				failures[0].RecordRef == 17 &&
				failures[1].ErrorDetail == "business_id is required"
		})).Return(nil)

		var out bytes.Buffer
		err := RunPublishEvents(ctx, useCase, ledger, nil, testLogger(), &out, PublishEventsParams{InputKey: inputKey})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 of 500 records failed")
		assert.Contains(t, out.String(), "processed=500 delivered=498 failed=2")
		assert.Contains(t, out.String(), "record 17: amount is not numeric")
		assert.Contains(t, out.String(), "record 231: business_id is required")
	})

	t.Run("Error_SourceFailure", func(t *testing.T) {
		useCase := forecastMocks.NewMockPublishUseCase(t)
		ledger := runlogMocks.NewMockRunLedger(t)

		useCase.On("Publish", ctx, inputKey).Return(nil, errors.New("object not found"))
		ledger.On("Record", ctx, mock.MatchedBy(func(run *runlogDomain.PipelineRun) bool {
			return run.Status == runlogDomain.RunStatusFailed
		}), mock.Anything).Return(nil)

		var out bytes.Buffer
		err := RunPublishEvents(ctx, useCase, ledger, nil, testLogger(), &out, PublishEventsParams{InputKey: inputKey})

		require.Error(t, err)
		assert.Empty(t, out.String())
	})

	t.Run("Error_MissingInputKey", func(t *testing.T) {
		useCase := forecastMocks.NewMockPublishUseCase(t)
		ledger := runlogMocks.NewMockRunLedger(t)

		var out bytes.Buffer
		err := RunPublishEvents(ctx, useCase, ledger, nil, testLogger(), &out, PublishEventsParams{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "input-key is required")
		useCase.AssertNotCalled(t, "Publish")
		ledger.AssertNotCalled(t, "Record")
	})
}

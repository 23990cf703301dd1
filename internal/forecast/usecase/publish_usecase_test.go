package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/liquidity/internal/forecast/usecase/mocks"
	"github.com/allisson/liquidity/internal/messaging"
	messagingMocks "github.com/allisson/liquidity/internal/messaging/mocks"
)

func validRecord(forecastID string) map[string]string {
	return map[string]string{
		"forecast_id":   forecastID,
		"business_id":   "BIZ-001",
		"source_system": "synthetic_csv",
		"cashflow_type": "PAYROLL",
		"direction":     "OUTFLOW",
		"amount":        "31250.50",
		"currency":      "USD",
		"event_date":    "2025-08-15",
		"category":      "Payroll > Salaries",
		"counterparty":  "Company Staff",
		"confidence":    "0.95",
		"scenario":      "base",
		"status":        "PLANNED",
		"created_at":    "2025-07-10T00:00:00Z",
	}
}

// newTestPublishUseCase builds a publishUseCase with deterministic time and id sources.
func newTestPublishUseCase(source EventSource, publisher messaging.Publisher) *publishUseCase {
	eventSeq := 0
	return &publishUseCase{
		source:    source,
		publisher: publisher,
		logger:    testLogger(),
		now:       func() time.Time { return time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC) },
		newEventID: func() string {
			eventSeq++
			return fmt.Sprintf("event-%d", eventSeq)
		},
	}
}

func TestPublishUseCase_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_AllRowsDelivered", func(t *testing.T) {
		mockSource := mocks.NewMockEventSource(t)
		mockPublisher := messagingMocks.NewMockPublisher(t)
		mockSource.Records = []map[string]string{validRecord("PAY-00001"), validRecord("PAY-00002")}

		mockSource.On("Iterate", ctx, "forecast.csv").Return(nil)
		mockPublisher.On("Publish", ctx, mock.Anything).Return(nil).Times(2)

		useCase := newTestPublishUseCase(mockSource, mockPublisher)
		summary, err := useCase.Publish(ctx, "forecast.csv")

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Processed)
		assert.Equal(t, 2, summary.Delivered)
		assert.Equal(t, 0, summary.Failed)
		assert.Empty(t, summary.Failures)
	})

	t.Run("Success_MessagePayload", func(t *testing.T) {
		mockSource := mocks.NewMockEventSource(t)
		mockPublisher := messagingMocks.NewMockPublisher(t)
		record := validRecord("PAY-00001")
		record["status"] = "ADJUSTED"
		mockSource.Records = []map[string]string{record}

		mockSource.On("Iterate", ctx, "forecast.csv").Return(nil)
		mockPublisher.On("Publish", ctx, mock.Anything).Return(nil)

		useCase := newTestPublishUseCase(mockSource, mockPublisher)
		_, err := useCase.Publish(ctx, "forecast.csv")
		require.NoError(t, err)

		require.Len(t, mockPublisher.Published, 1)
		msg := mockPublisher.Published[0]
		assert.Equal(t, "UPDATE", msg.Metadata["event_type"])
		assert.Equal(t, "BIZ-001", msg.Metadata["business_id"])

		var payload map[string]any
		require.NoError(t, json.Unmarshal(msg.Body, &payload))
		assert.Equal(t, "event-1", payload["event_id"])
		assert.Equal(t, "UPDATE", payload["event_type"])
		assert.Equal(t, "ADJUSTED", payload["event_status"])
		assert.Equal(t, "PAY-00001", payload["forecast_id"])
		assert.Equal(t, 31250.50, payload["amount"])
		assert.Equal(t, "2025-08-26T12:00:00Z", payload["ingest_ts"])
		assert.Equal(t, "synthetic_csv", payload["source_system"])
		assert.Equal(t, float64(1), payload["version"])
	})

	t.Run("PartialFailure_SchemaMismatchRowsAreSkipped", func(t *testing.T) {
		mockSource := mocks.NewMockEventSource(t)
		mockPublisher := messagingMocks.NewMockPublisher(t)
		badAmount := validRecord("PAY-00002")
		badAmount["amount"] = "not-a-number"
		missingBusiness := validRecord("PAY-00003")
		delete(missingBusiness, "business_id")
		mockSource.Records = []map[string]string{validRecord("PAY-00001"), badAmount, missingBusiness}

		mockSource.On("Iterate", ctx, "forecast.csv").Return(nil)
		mockPublisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		useCase := newTestPublishUseCase(mockSource, mockPublisher)
		summary, err := useCase.Publish(ctx, "forecast.csv")

		require.NoError(t, err)
		assert.Equal(t, 3, summary.Processed)
		assert.Equal(t, 1, summary.Delivered)
		assert.Equal(t, 2, summary.Failed)
		require.Len(t, summary.Failures, 2)
		assert.Equal(t, 1, summary.Failures[0].RecordRef)
		assert.Contains(t, summary.Failures[0].ErrorDetail, "amount is not numeric")
		assert.Equal(t, 2, summary.Failures[1].RecordRef)
		assert.Contains(t, summary.Failures[1].ErrorDetail, "business_id")
	})

	t.Run("PartialFailure_TransportRejectionsAreSkipped", func(t *testing.T) {
		mockSource := mocks.NewMockEventSource(t)
		mockPublisher := messagingMocks.NewMockPublisher(t)
		mockSource.Records = []map[string]string{validRecord("PAY-00001"), validRecord("PAY-00002")}

		mockSource.On("Iterate", ctx, "forecast.csv").Return(nil)
		mockPublisher.On("Publish", ctx, mock.Anything).Return(assert.AnError).Once()
		mockPublisher.On("Publish", ctx, mock.Anything).Return(nil).Once()

		useCase := newTestPublishUseCase(mockSource, mockPublisher)
		summary, err := useCase.Publish(ctx, "forecast.csv")

		require.NoError(t, err)
		assert.Equal(t, 2, summary.Processed)
		assert.Equal(t, 1, summary.Delivered)
		assert.Equal(t, 1, summary.Failed)
		require.Len(t, summary.Failures, 1)
		assert.Equal(t, 0, summary.Failures[0].RecordRef)
	})

	t.Run("Error_SourceFailureAborts", func(t *testing.T) {
		mockSource := mocks.NewMockEventSource(t)
		mockPublisher := messagingMocks.NewMockPublisher(t)

		mockSource.On("Iterate", ctx, "missing.csv").Return(assert.AnError)

		useCase := newTestPublishUseCase(mockSource, mockPublisher)
		summary, err := useCase.Publish(ctx, "missing.csv")

		assert.Nil(t, summary)
		assert.ErrorIs(t, err, assert.AnError)
		mockPublisher.AssertNotCalled(t, "Publish", ctx, mock.Anything)
	})

	t.Run("Success_EmptyFile", func(t *testing.T) {
		mockSource := mocks.NewMockEventSource(t)
		mockPublisher := messagingMocks.NewMockPublisher(t)

		mockSource.On("Iterate", ctx, "forecast.csv").Return(nil)

		useCase := newTestPublishUseCase(mockSource, mockPublisher)
		summary, err := useCase.Publish(ctx, "forecast.csv")

		require.NoError(t, err)
		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 0, summary.Delivered)
		assert.Equal(t, 0, summary.Failed)
	})
}

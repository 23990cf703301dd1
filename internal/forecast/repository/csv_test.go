package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"

	"github.com/allisson/liquidity/internal/forecast/domain"
	"github.com/allisson/liquidity/internal/forecast/service"
)

func makeEvent(id string) *domain.ForecastEvent {
	return &domain.ForecastEvent{
		ForecastID:   id,
		BusinessID:   "BIZ-001",
		CashflowType: domain.CashflowTypePayroll,
		Direction:    domain.DirectionOutflow,
		Amount:       decimal.NewFromFloat(31250.50),
		Currency:     "USD",
		EventDate:    time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Category:     "Payroll > Salaries",
		Counterparty: "Company Staff",
		Confidence:   0.95,
		Scenario:     "base",
		Status:       domain.EventStatusPlanned,
		CreatedAt:    time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestCSVEventSink(t *testing.T) {
	t.Run("writes header and rows", func(t *testing.T) {
		ctx := context.Background()
		bucket := memblob.OpenBucket(nil)
		defer func() { _ = bucket.Close() }()
		sink := NewCSVEventSink(bucket)

		err := sink.WriteEvents(ctx, "forecast.csv", []*domain.ForecastEvent{makeEvent("PAY-00001"), makeEvent("PAY-00002")})
		require.NoError(t, err)

		data, err := bucket.ReadAll(ctx, "forecast.csv")
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "forecast_id,business_id,source_system,cashflow_type,direction,amount,currency,event_date,category,counterparty,confidence,scenario,status,created_at")
		assert.Contains(t, content, "PAY-00001,BIZ-001,synthetic_csv,PAYROLL,OUTFLOW,31250.50,USD,2025-08-15,Payroll > Salaries,Company Staff,0.95,base,PLANNED,2025-07-10T00:00:00Z")
		assert.Contains(t, content, "PAY-00002")
	})

	t.Run("empty event slice writes a header-only object", func(t *testing.T) {
		ctx := context.Background()
		bucket := memblob.OpenBucket(nil)
		defer func() { _ = bucket.Close() }()
		sink := NewCSVEventSink(bucket)

		err := sink.WriteEvents(ctx, "forecast.csv", nil)
		require.NoError(t, err)

		data, err := bucket.ReadAll(ctx, "forecast.csv")
		require.NoError(t, err)
		assert.Equal(t, "forecast_id,business_id,source_system,cashflow_type,direction,amount,currency,event_date,category,counterparty,confidence,scenario,status,created_at\n", string(data))
	})

	t.Run("same seed writes byte-identical objects", func(t *testing.T) {
		ctx := context.Background()
		bucket := memblob.OpenBucket(nil)
		defer func() { _ = bucket.Close() }()
		sink := NewCSVEventSink(bucket)
		synthesizer := service.NewSynthesizer()
		params := domain.GenerateParams{
			StartDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
			RowCount:      200,
			BusinessIDs:   []string{"BIZ-001", "BIZ-002"},
			Seed:          7,
			Scenario:      "base",
			Currency:      "USD",
			AdjustedRate:  0.15,
			CancelledRate: 0.05,
		}

		first, err := synthesizer.Synthesize(params)
		require.NoError(t, err)
		second, err := synthesizer.Synthesize(params)
		require.NoError(t, err)
		require.NoError(t, sink.WriteEvents(ctx, "first.csv", first))
		require.NoError(t, sink.WriteEvents(ctx, "second.csv", second))

		firstData, err := bucket.ReadAll(ctx, "first.csv")
		require.NoError(t, err)
		secondData, err := bucket.ReadAll(ctx, "second.csv")
		require.NoError(t, err)
		assert.Equal(t, firstData, secondData)
	})
}

func TestCSVEventSource(t *testing.T) {
	t.Run("round-trips written events", func(t *testing.T) {
		ctx := context.Background()
		bucket := memblob.OpenBucket(nil)
		defer func() { _ = bucket.Close() }()
		sink := NewCSVEventSink(bucket)
		source := NewCSVEventSource(bucket)
		event := makeEvent("PAY-00001")
		require.NoError(t, sink.WriteEvents(ctx, "forecast.csv", []*domain.ForecastEvent{event}))

		var records []map[string]string
		err := source.Iterate(ctx, "forecast.csv", func(index int, record map[string]string) error {
			assert.Equal(t, len(records), index)
			records = append(records, record)
			return nil
		})

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "PAY-00001", records[0]["forecast_id"])
		assert.Equal(t, "31250.50", records[0]["amount"])
		assert.Equal(t, "2025-08-15", records[0]["event_date"])
		assert.Equal(t, "PLANNED", records[0]["status"])
	})

	t.Run("callback error stops the iteration", func(t *testing.T) {
		ctx := context.Background()
		bucket := memblob.OpenBucket(nil)
		defer func() { _ = bucket.Close() }()
		sink := NewCSVEventSink(bucket)
		source := NewCSVEventSource(bucket)
		events := []*domain.ForecastEvent{makeEvent("PAY-00001"), makeEvent("PAY-00002")}
		require.NoError(t, sink.WriteEvents(ctx, "forecast.csv", events))

		calls := 0
		err := source.Iterate(ctx, "forecast.csv", func(index int, record map[string]string) error {
			calls++
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, calls)
	})

	t.Run("missing object fails", func(t *testing.T) {
		ctx := context.Background()
		bucket := memblob.OpenBucket(nil)
		defer func() { _ = bucket.Close() }()
		source := NewCSVEventSource(bucket)

		err := source.Iterate(ctx, "missing.csv", func(int, map[string]string) error { return nil })

		assert.Error(t, err)
	})
}

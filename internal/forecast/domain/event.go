package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// EventColumns is the fixed column contract of the forecast tabular
// intermediate, shared with the external warehouse loader. The sink writes
// columns in this order; consumers address them by name.
var EventColumns = []string{
	"forecast_id",
	"business_id",
	"source_system",
	"cashflow_type",
	"direction",
	"amount",
	"currency",
	"event_date",
	"category",
	"counterparty",
	"confidence",
	"scenario",
	"status",
	"created_at",
}

// ForecastEvent is one simulated future cash-flow item. Events are created by
// the synthesizer, serialized once to the tabular intermediate, and never
// mutated afterwards.
type ForecastEvent struct {
	// ForecastID is a readable per-type sequential identifier (e.g., "PAY-00001").
	ForecastID string
	// BusinessID identifies the business this event belongs to.
	BusinessID string
	// CashflowType is the coarse kind of cash flow (payroll, receivable, ...).
	CashflowType CashflowType
	// Direction marks the event as inflow or outflow.
	Direction Direction
	// Amount is the positive magnitude of the event, rounded to cents.
	Amount decimal.Decimal
	// Currency is the ISO 4217 currency code.
	Currency string
	// EventDate is the calendar date the cash flow is expected on (UTC midnight).
	EventDate time.Time
	// Category is the reporting label derived from the cash-flow type.
	Category string
	// Counterparty names the other side of the cash flow.
	Counterparty string
	// Confidence is a probability-like score in [0,1].
	Confidence float64
	// Scenario tags the planning scenario the event belongs to (e.g., "base").
	Scenario string
	// Status is the planning status of the row.
	Status EventStatus
	// CreatedAt is the simulated creation timestamp, derived from EventDate so
	// that seeded runs stay byte-identical.
	CreatedAt time.Time
}

// Record serializes the event as one tabular row in EventColumns order.
func (e *ForecastEvent) Record() []string {
	return []string{
		e.ForecastID,
		e.BusinessID,
		SourceSystem,
		string(e.CashflowType),
		string(e.Direction),
		e.Amount.StringFixed(2),
		e.Currency,
		e.EventDate.Format(time.DateOnly),
		e.Category,
		e.Counterparty,
		strconv.FormatFloat(e.Confidence, 'f', 2, 64),
		e.Scenario,
		string(e.Status),
		e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GenerateParams are the synthesizer inputs for one generation run.
type GenerateParams struct {
	// StartDate and EndDate bound event dates, inclusive (UTC midnight).
	StartDate time.Time
	EndDate   time.Time
	// RowCount is the exact number of events to produce.
	RowCount int
	// BusinessIDs is the fixed set identifiers are sampled from.
	BusinessIDs []string
	// Seed fixes the randomness source; identical parameters and seed produce
	// byte-identical output.
	Seed int64
	// Scenario and Currency are stamped on every row.
	Scenario string
	Currency string
	// AdjustedRate and CancelledRate are the per-row probabilities of the
	// ADJUSTED and CANCELLED statuses.
	AdjustedRate  float64
	CancelledRate float64
}

// Validate checks the generation preconditions. No other validation is
// performed; a zero row count is accepted and yields an empty sequence.
func (p *GenerateParams) Validate() error {
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidRange
	}
	if p.RowCount < 0 {
		return ErrInvalidRowCount
	}
	if len(p.BusinessIDs) == 0 {
		return ErrEmptyBusinessSet
	}
	return nil
}

// GenerateSummary reports the outcome of one generation run.
type GenerateSummary struct {
	Rows      int
	OutputKey string
}

// PublishFailure records one row that could not be delivered.
type PublishFailure struct {
	// RecordRef is the zero-based row index in the source file.
	RecordRef int
	// ErrorDetail explains why the row failed.
	ErrorDetail string
}

// PublishSummary aggregates the outcome of one publish run.
type PublishSummary struct {
	Processed int
	Delivered int
	Failed    int
	Failures  []PublishFailure
}

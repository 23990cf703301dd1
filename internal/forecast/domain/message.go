package domain

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/liquidity/internal/errors"
	customValidation "github.com/allisson/liquidity/internal/validation"
)

// EventMessage is the fixed outbound message schema. The external topic
// enforces field names and types; a message failing Validate would be
// rejected by the transport, so it is never sent.
type EventMessage struct {
	EventID      string  `json:"event_id"`
	EventType    string  `json:"event_type"`
	EventStatus  string  `json:"event_status"`
	ForecastID   string  `json:"forecast_id"`
	BusinessID   string  `json:"business_id"`
	CashflowType string  `json:"cashflow_type"`
	Direction    string  `json:"direction"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	EventDate    string  `json:"event_date"`
	Category     string  `json:"category"`
	Counterparty string  `json:"counterparty"`
	Confidence   float64 `json:"confidence"`
	Scenario     string  `json:"scenario"`
	CreatedAt    string  `json:"created_at"`
	IngestTS     string  `json:"ingest_ts"`
	SourceSystem string  `json:"source_system"`
	Version      int     `json:"version"`
}

// NewEventMessage maps one tabular record onto the message schema. Numeric
// fields that cannot be parsed fail with ErrSchemaMismatch; the ingest
// timestamp is stamped here, at publish time, never by the generator.
func NewEventMessage(record map[string]string, eventID string, ingestTS time.Time) (*EventMessage, error) {
	amount, err := parseFloatField(record, "amount", 0)
	if err != nil {
		return nil, err
	}

	// Blank confidence defaults to certainty; the column is optional.
	confidence, err := parseFloatField(record, "confidence", 1.0)
	if err != nil {
		return nil, err
	}

	status := strings.ToUpper(strings.TrimSpace(record["status"]))
	if status == "" {
		status = string(EventStatusPlanned)
	}

	return &EventMessage{
		EventID:      eventID,
		EventType:    string(EventTypeForStatus(EventStatus(status))),
		EventStatus:  status,
		ForecastID:   record["forecast_id"],
		BusinessID:   record["business_id"],
		CashflowType: record["cashflow_type"],
		Direction:    record["direction"],
		Amount:       amount,
		Currency:     record["currency"],
		EventDate:    record["event_date"],
		Category:     record["category"],
		Counterparty: record["counterparty"],
		Confidence:   confidence,
		Scenario:     record["scenario"],
		CreatedAt:    record["created_at"],
		IngestTS:     ingestTS.UTC().Format(time.RFC3339),
		SourceSystem: SourceSystem,
		Version:      MessageVersion,
	}, nil
}

// Validate checks the message against the schema contract. Any violation is
// reported as ErrSchemaMismatch so callers can apply partial-failure semantics.
func (m *EventMessage) Validate() error {
	err := validation.ValidateStruct(m,
		validation.Field(&m.EventID, validation.Required, customValidation.NotBlank),
		validation.Field(&m.EventType,
			validation.Required,
			validation.In(
				string(EventTypeCreate),
				string(EventTypeUpdate),
				string(EventTypeCancel),
			),
		),
		validation.Field(&m.ForecastID, validation.Required, customValidation.NotBlank),
		validation.Field(&m.BusinessID, validation.Required, customValidation.NotBlank),
		validation.Field(&m.CashflowType, validation.Required, customValidation.NotBlank),
		validation.Field(&m.Direction,
			validation.Required,
			validation.In(string(DirectionInflow), string(DirectionOutflow)),
		),
		validation.Field(&m.Amount, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&m.Currency, validation.Required, validation.Length(3, 3)),
		validation.Field(&m.EventDate, validation.Required, customValidation.DateOnly),
		validation.Field(&m.Confidence, validation.Min(0.0), validation.Max(1.0)),
	)
	if err != nil {
		return apperrors.Wrap(ErrSchemaMismatch, err.Error())
	}
	return nil
}

// parseFloatField parses an optional numeric column, applying the default
// when the column is blank or absent.
func parseFloatField(record map[string]string, column string, def float64) (float64, error) {
	raw := strings.TrimSpace(record[column])
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.Wrap(ErrSchemaMismatch, column+" is not numeric")
	}
	return value, nil
}

// Package domain defines the core forecast domain models: synthetic cash-flow
// events, the tabular column contract, and the outbound message schema.
package domain

// Direction classifies a cash-flow event as money in or money out.
type Direction string

const (
	DirectionInflow  Direction = "INFLOW"
	DirectionOutflow Direction = "OUTFLOW"
)

// CashflowType is the coarse kind of a forecasted cash-flow item.
type CashflowType string

const (
	CashflowTypeARInvoice   CashflowType = "AR_INVOICE"
	CashflowTypePayroll     CashflowType = "PAYROLL"
	CashflowTypeAPBill      CashflowType = "AP_BILL"
	CashflowTypeTax         CashflowType = "TAX"
	CashflowTypeLoanPayment CashflowType = "LOAN_PAYMENT"
	CashflowTypeCreditDraw  CashflowType = "CREDIT_DRAW"
	CashflowTypeOther       CashflowType = "OTHER"
)

// EventStatus is the planning status of a forecast row.
type EventStatus string

const (
	EventStatusPlanned   EventStatus = "PLANNED"
	EventStatusAdjusted  EventStatus = "ADJUSTED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// EventType is the change-event kind derived from a row's status at publish time.
type EventType string

const (
	EventTypeCreate EventType = "CREATE"
	EventTypeUpdate EventType = "UPDATE"
	EventTypeCancel EventType = "CANCEL"
)

// SourceSystem identifies synthetic forecast data in downstream tables.
const SourceSystem = "synthetic_csv"

// MessageVersion is the payload version stamped on every published message.
const MessageVersion = 1

// EventTypeForStatus maps a row status to the outbound event type.
func EventTypeForStatus(status EventStatus) EventType {
	switch status {
	case EventStatusAdjusted:
		return EventTypeUpdate
	case EventStatusCancelled:
		return EventTypeCancel
	default:
		return EventTypeCreate
	}
}

// Package domain defines the core actuals domain models: normalized banking
// transactions and opening balances pulled from the upstream provider sandbox.
package domain

// SourceSystem identifies provider sandbox data in downstream tables.
const SourceSystem = "plaid_sandbox"

// CashflowTypeActual marks every pulled transaction row. Forecast rows carry
// their own cash-flow types; actuals are a single homogeneous kind.
const CashflowTypeActual = "ACTUAL_TXN"

// Direction classifies a transaction as money in or money out.
type Direction string

const (
	DirectionInflow  Direction = "INFLOW"
	DirectionOutflow Direction = "OUTFLOW"
)

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceColumns is the fixed column contract of the opening-balance tabular object.
var BalanceColumns = []string{
	"business_id",
	"opening_balance_date",
	"opening_balance_amount",
}

// OpeningBalance is the aggregated opening cash position of one business:
// the sum of current balances across the accounts of its sandbox item.
type OpeningBalance struct {
	BusinessID string
	Date       time.Time
	Amount     decimal.Decimal
}

// Record serializes the balance as one tabular row in BalanceColumns order.
func (b *OpeningBalance) Record() []string {
	return []string{
		b.BusinessID,
		b.Date.Format(time.DateOnly),
		b.Amount.StringFixed(2),
	}
}

// PullBalancesParams are the inputs for one opening-balance pull run.
type PullBalancesParams struct {
	// BusinessIDs get one sandbox item each.
	BusinessIDs []string
	// OpeningDate is stamped on every row.
	OpeningDate time.Time
	// Institution is the sandbox institution items are created against.
	Institution string
}

// Validate checks the pull preconditions.
func (p *PullBalancesParams) Validate() error {
	if len(p.BusinessIDs) == 0 {
		return ErrEmptyBusinessSet
	}
	if p.Institution == "" {
		return ErrEmptyInstitutionSet
	}
	return nil
}

// BalancesSummary reports the outcome of one opening-balance pull run.
type BalancesSummary struct {
	Rows      int
	OutputKey string
}

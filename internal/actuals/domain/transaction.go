package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionColumns is the fixed column contract of the actuals tabular
// intermediate, shared with the external warehouse loader.
var TransactionColumns = []string{
	"actual_id",
	"business_id",
	"account_id",
	"account_name",
	"source_system",
	"cashflow_type",
	"direction",
	"amount",
	"currency",
	"post_date",
	"authorized_date",
	"merchant_name",
	"original_name",
	"category_l1",
	"category_l2",
	"payment_channel",
	"transaction_type",
	"pending",
	"ingest_ts",
}

// Transaction is one normalized banking transaction. Provider sign
// conventions are already resolved: Amount is the absolute magnitude and
// Direction carries the flow.
type Transaction struct {
	// ActualID is the de-duplication identity: provider transaction id
	// suffixed with the account id.
	ActualID       string
	BusinessID     string
	AccountID      string
	AccountName    string
	Direction      Direction
	Amount         decimal.Decimal
	Currency       string
	PostDate       string
	AuthorizedDate string
	MerchantName   string
	OriginalName   string
	CategoryL1     string
	CategoryL2     string
	PaymentChannel string
	Type           string
	Pending        bool
	IngestTS       time.Time
}

// Record serializes the transaction as one tabular row in TransactionColumns order.
func (t *Transaction) Record() []string {
	return []string{
		t.ActualID,
		t.BusinessID,
		t.AccountID,
		t.AccountName,
		SourceSystem,
		CashflowTypeActual,
		string(t.Direction),
		t.Amount.StringFixed(2),
		t.Currency,
		t.PostDate,
		t.AuthorizedDate,
		t.MerchantName,
		t.OriginalName,
		t.CategoryL1,
		t.CategoryL2,
		t.PaymentChannel,
		t.Type,
		strconv.FormatBool(t.Pending),
		t.IngestTS.UTC().Format(time.RFC3339),
	}
}

// BankAccount is the provider account view the gateway exposes: identity,
// display name and the current balance used for opening-balance aggregation.
type BankAccount struct {
	ID             string
	Name           string
	CurrentBalance decimal.Decimal
	// HasBalance is false when the provider reported no current balance;
	// such accounts are excluded from opening-balance sums.
	HasBalance bool
}

// BankTransaction is the raw provider transaction view before normalization.
// Amount keeps the provider sign convention: positive is money out.
type BankTransaction struct {
	TransactionID  string
	AccountID      string
	Amount         float64
	Currency       string
	PostDate       string
	AuthorizedDate string
	MerchantName   string
	Name           string
	Categories     []string
	PaymentChannel string
	Type           string
	Pending        bool
}

// TransactionPage is one page of a paginated transaction listing.
type TransactionPage struct {
	Transactions []BankTransaction
	// Total is the provider's count of transactions matching the query,
	// across all pages.
	Total int
}

// PullActualsParams are the inputs for one actuals pull run.
type PullActualsParams struct {
	// StartDate and EndDate bound transaction post dates, inclusive.
	StartDate time.Time
	EndDate   time.Time
	// BusinessID is stamped on every row.
	BusinessID string
	// Institutions is the pool sandbox items are created against, round-robin.
	Institutions []string
	// ItemCount is the number of sandbox items to create.
	ItemCount int
	// PageSize is the transaction listing page size.
	PageSize int
	// TargetRows stops the item loop once at least this many transactions were
	// collected. Zero disables the stop condition.
	TargetRows int
}

// Validate checks the pull preconditions.
func (p *PullActualsParams) Validate() error {
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidRange
	}
	if len(p.Institutions) == 0 {
		return ErrEmptyInstitutionSet
	}
	if p.ItemCount <= 0 {
		return ErrInvalidItemCount
	}
	return nil
}

// PullSummary reports the outcome of one actuals pull run.
type PullSummary struct {
	// Items is the number of sandbox items actually pulled.
	Items int
	// Fetched counts transactions before de-duplication, Rows after.
	Fetched   int
	Rows      int
	OutputKey string
}

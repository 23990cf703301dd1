// Package service implements the banking provider gateway on top of the Plaid
// sandbox API.
package service

import (
	"context"
	"net/http"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/allisson/liquidity/internal/actuals/domain"
)

// BankingGateway is the narrow provider capability the pull use cases need:
// sandbox item creation, account listing and paginated transaction listing.
type BankingGateway interface {
	// CreateSandboxItem creates a sandbox item for the institution and returns
	// its access token.
	CreateSandboxItem(ctx context.Context, institutionID string) (string, error)

	// ListAccounts returns the accounts of the item, balances included.
	ListAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error)

	// ListTransactions returns one page of transactions posted within
	// [start, end], inclusive.
	ListTransactions(
		ctx context.Context,
		accessToken string,
		start, end time.Time,
		offset, count int,
	) (*domain.TransactionPage, error)
}

// plaidGateway implements BankingGateway with the official Plaid client. All
// calls go through a shared rate limiter so multi-item pulls stay polite.
type plaidGateway struct {
	client  *plaid.APIClient
	limiter *rate.Limiter
}

// NewPlaidGateway creates a BankingGateway for the given credentials.
// Environment is "sandbox" or "production"; requestsPerSec caps the call rate.
func NewPlaidGateway(clientID, secret, environment string, requestsPerSec float64) BankingGateway {
	env := plaid.Sandbox
	if environment == "production" {
		env = plaid.Production
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	configuration.AddDefaultHeader("PLAID-SECRET", secret)
	configuration.UseEnvironment(env)

	return &plaidGateway{
		client:  plaid.NewAPIClient(configuration),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
	}
}

// CreateSandboxItem creates a sandbox public token and exchanges it for an access token.
func (g *plaidGateway) CreateSandboxItem(ctx context.Context, institutionID string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	tokenRequest := plaid.NewSandboxPublicTokenCreateRequest(
		institutionID,
		[]plaid.Products{plaid.PRODUCTS_TRANSACTIONS},
	)
	tokenResponse, httpResponse, err := g.client.PlaidApi.SandboxPublicTokenCreate(ctx).
		SandboxPublicTokenCreateRequest(*tokenRequest).
		Execute()
	if err != nil {
		return "", upstreamError(err, httpResponse)
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	exchangeRequest := plaid.NewItemPublicTokenExchangeRequest(tokenResponse.GetPublicToken())
	exchangeResponse, httpResponse, err := g.client.PlaidApi.ItemPublicTokenExchange(ctx).
		ItemPublicTokenExchangeRequest(*exchangeRequest).
		Execute()
	if err != nil {
		return "", upstreamError(err, httpResponse)
	}

	return exchangeResponse.GetAccessToken(), nil
}

// ListAccounts returns the item's accounts with their current balances.
func (g *plaidGateway) ListAccounts(ctx context.Context, accessToken string) ([]domain.BankAccount, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	request := plaid.NewAccountsGetRequest(accessToken)
	response, httpResponse, err := g.client.PlaidApi.AccountsGet(ctx).
		AccountsGetRequest(*request).
		Execute()
	if err != nil {
		return nil, upstreamError(err, httpResponse)
	}

	providerAccounts := response.GetAccounts()
	accounts := make([]domain.BankAccount, 0, len(providerAccounts))
	for _, account := range providerAccounts {
		balances := account.GetBalances()
		current, hasBalance := balances.GetCurrentOk()

		bankAccount := domain.BankAccount{
			ID:         account.GetAccountId(),
			Name:       account.GetName(),
			HasBalance: hasBalance && current != nil,
		}
		if bankAccount.HasBalance {
			bankAccount.CurrentBalance = decimal.NewFromFloat(*current)
		}
		accounts = append(accounts, bankAccount)
	}

	return accounts, nil
}

// ListTransactions returns one transaction page for the date range.
func (g *plaidGateway) ListTransactions(
	ctx context.Context,
	accessToken string,
	start, end time.Time,
	offset, count int,
) (*domain.TransactionPage, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	options := plaid.NewTransactionsGetRequestOptions()
	options.SetOffset(int32(offset))
	options.SetCount(int32(count))

	request := plaid.NewTransactionsGetRequest(
		accessToken,
		start.Format(time.DateOnly),
		end.Format(time.DateOnly),
	)
	request.SetOptions(*options)

	response, httpResponse, err := g.client.PlaidApi.TransactionsGet(ctx).
		TransactionsGetRequest(*request).
		Execute()
	if err != nil {
		return nil, upstreamError(err, httpResponse)
	}

	providerTransactions := response.GetTransactions()
	transactions := make([]domain.BankTransaction, 0, len(providerTransactions))
	for _, transaction := range providerTransactions {
		transactions = append(transactions, domain.BankTransaction{
			TransactionID:  transaction.GetTransactionId(),
			AccountID:      transaction.GetAccountId(),
			Amount:         transaction.GetAmount(),
			Currency:       transaction.GetIsoCurrencyCode(),
			PostDate:       transaction.GetDate(),
			AuthorizedDate: transaction.GetAuthorizedDate(),
			MerchantName:   transaction.GetMerchantName(),
			Name:           transaction.GetName(),
			Categories:     transaction.GetCategory(),
			PaymentChannel: transaction.GetPaymentChannel(),
			Type:           transaction.GetTransactionType(),
			Pending:        transaction.GetPending(),
		})
	}

	return &domain.TransactionPage{
		Transactions: transactions,
		Total:        int(response.GetTotalTransactions()),
	}, nil
}

// upstreamError converts a Plaid client error into the domain upstream error,
// preserving the provider's error code and HTTP status.
func upstreamError(err error, httpResponse *http.Response) error {
	statusCode := 0
	if httpResponse != nil {
		statusCode = httpResponse.StatusCode
	}

	if plaidErr, convErr := plaid.ToPlaidError(err); convErr == nil {
		return &domain.UpstreamAPIError{
			StatusCode: statusCode,
			Code:       plaidErr.GetErrorCode(),
			Message:    plaidErr.GetErrorMessage(),
		}
	}

	return &domain.UpstreamAPIError{
		StatusCode: statusCode,
		Message:    err.Error(),
	}
}

package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/allisson/liquidity/internal/actuals/domain"
)

// pullActualsUseCase implements PullActualsUseCase.
type pullActualsUseCase struct {
	gateway BankingGateway
	sink    TransactionSink
	logger  *slog.Logger

	// Injectable for deterministic tests.
	now func() time.Time
}

// NewPullActualsUseCase creates a new PullActualsUseCase.
func NewPullActualsUseCase(gateway BankingGateway, sink TransactionSink, logger *slog.Logger) PullActualsUseCase {
	return &pullActualsUseCase{
		gateway: gateway,
		sink:    sink,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Pull collects, normalizes and persists sandbox transactions.
func (p *pullActualsUseCase) Pull(
	ctx context.Context,
	params domain.PullActualsParams,
	key string,
) (*domain.PullSummary, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var collected []domain.BankTransaction
	accountNames := make(map[string]string)
	items := 0

	for i := 0; i < params.ItemCount; i++ {
		institutionID := params.Institutions[i%len(params.Institutions)]

		accessToken, err := p.gateway.CreateSandboxItem(ctx, institutionID)
		if err != nil {
			return nil, err
		}

		accounts, err := p.gateway.ListAccounts(ctx, accessToken)
		if err != nil {
			return nil, err
		}
		for _, account := range accounts {
			accountNames[account.ID] = account.Name
		}

		transactions, err := p.collectItemTransactions(ctx, accessToken, params)
		if err != nil {
			return nil, err
		}
		collected = append(collected, transactions...)
		items++

		p.logger.InfoContext(ctx, "sandbox item pulled",
			slog.Int("item", i),
			slog.String("institution_id", institutionID),
			slog.Int("collected", len(collected)),
		)

		if params.TargetRows > 0 && len(collected) >= params.TargetRows {
			break
		}
	}

	ingestTS := p.now()
	normalized := normalize(collected, params.BusinessID, accountNames, ingestTS)

	if err := p.sink.WriteTransactions(ctx, key, normalized); err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "actuals pulled",
		slog.Int("items", items),
		slog.Int("fetched", len(collected)),
		slog.Int("rows", len(normalized)),
		slog.String("output_key", key),
	)

	return &domain.PullSummary{
		Items:     items,
		Fetched:   len(collected),
		Rows:      len(normalized),
		OutputKey: key,
	}, nil
}

// collectItemTransactions pages through one item's transactions until the
// provider's total is reached.
func (p *pullActualsUseCase) collectItemTransactions(
	ctx context.Context,
	accessToken string,
	params domain.PullActualsParams,
) ([]domain.BankTransaction, error) {
	var transactions []domain.BankTransaction
	offset := 0

	for {
		page, err := p.gateway.ListTransactions(ctx, accessToken, params.StartDate, params.EndDate, offset, params.PageSize)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, page.Transactions...)
		offset += len(page.Transactions)
		if offset >= page.Total || len(page.Transactions) == 0 {
			return transactions, nil
		}
	}
}

// normalize resolves the provider sign convention, assigns de-duplication
// identities and drops duplicates while preserving collection order.
func normalize(
	transactions []domain.BankTransaction,
	businessID string,
	accountNames map[string]string,
	ingestTS time.Time,
) []*domain.Transaction {
	seen := make(map[string]bool, len(transactions))
	normalized := make([]*domain.Transaction, 0, len(transactions))

	for _, transaction := range transactions {
		// Provider convention: positive amount is money out.
		direction := domain.DirectionOutflow
		if transaction.Amount < 0 {
			direction = domain.DirectionInflow
		}

		currency := transaction.Currency
		if currency == "" {
			currency = "USD"
		}

		var categoryL1, categoryL2 string
		if len(transaction.Categories) > 0 {
			categoryL1 = transaction.Categories[0]
		}
		if len(transaction.Categories) > 1 {
			categoryL2 = transaction.Categories[1]
		}

		actualID := actualID(transaction)
		if seen[actualID] {
			continue
		}
		seen[actualID] = true

		normalized = append(normalized, &domain.Transaction{
			ActualID:       actualID,
			BusinessID:     businessID,
			AccountID:      transaction.AccountID,
			AccountName:    accountNames[transaction.AccountID],
			Direction:      direction,
			Amount:         decimal.NewFromFloat(transaction.Amount).Abs(),
			Currency:       currency,
			PostDate:       transaction.PostDate,
			AuthorizedDate: transaction.AuthorizedDate,
			MerchantName:   transaction.MerchantName,
			OriginalName:   transaction.Name,
			CategoryL1:     categoryL1,
			CategoryL2:     categoryL2,
			PaymentChannel: transaction.PaymentChannel,
			Type:           transaction.Type,
			Pending:        transaction.Pending,
			IngestTS:       ingestTS,
		})
	}

	return normalized
}

// actualID derives the de-duplication identity: the provider transaction id
// suffixed with the account id, with a content hash surrogate when the
// provider id is missing.
func actualID(transaction domain.BankTransaction) string {
	id := transaction.TransactionID
	if id == "" {
		sum := md5.Sum([]byte(fmt.Sprintf("%s%s%f", transaction.PostDate, transaction.Name, transaction.Amount)))
		id = hex.EncodeToString(sum[:])
	}
	return id + "_" + transaction.AccountID
}

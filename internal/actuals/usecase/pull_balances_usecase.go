package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/allisson/liquidity/internal/actuals/domain"
)

// pullBalancesUseCase implements PullBalancesUseCase.
type pullBalancesUseCase struct {
	gateway BankingGateway
	sink    BalanceSink
	logger  *slog.Logger
}

// NewPullBalancesUseCase creates a new PullBalancesUseCase.
func NewPullBalancesUseCase(gateway BankingGateway, sink BalanceSink, logger *slog.Logger) PullBalancesUseCase {
	return &pullBalancesUseCase{
		gateway: gateway,
		sink:    sink,
		logger:  logger,
	}
}

// Pull aggregates one opening balance per business and persists the rows.
func (p *pullBalancesUseCase) Pull(
	ctx context.Context,
	params domain.PullBalancesParams,
	key string,
) (*domain.BalancesSummary, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	balances := make([]*domain.OpeningBalance, 0, len(params.BusinessIDs))
	for _, businessID := range params.BusinessIDs {
		accessToken, err := p.gateway.CreateSandboxItem(ctx, params.Institution)
		if err != nil {
			return nil, err
		}

		accounts, err := p.gateway.ListAccounts(ctx, accessToken)
		if err != nil {
			return nil, err
		}

		total := decimal.Zero
		for _, account := range accounts {
			if account.HasBalance {
				total = total.Add(account.CurrentBalance)
			}
		}

		balances = append(balances, &domain.OpeningBalance{
			BusinessID: businessID,
			Date:       params.OpeningDate,
			Amount:     total,
		})

		p.logger.InfoContext(ctx, "opening balance aggregated",
			slog.String("business_id", businessID),
			slog.String("amount", total.StringFixed(2)),
		)
	}

	if err := p.sink.WriteBalances(ctx, key, balances); err != nil {
		return nil, err
	}

	return &domain.BalancesSummary{
		Rows:      len(balances),
		OutputKey: key,
	}, nil
}

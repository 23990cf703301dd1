package app

import (
	"context"
	"fmt"

	actualsRepository "github.com/allisson/liquidity/internal/actuals/repository"
	actualsService "github.com/allisson/liquidity/internal/actuals/service"
	actualsUsecase "github.com/allisson/liquidity/internal/actuals/usecase"
)

// BankingGateway returns the provider gateway for sandbox pulls.
func (c *Container) BankingGateway() actualsService.BankingGateway {
	c.bankingGatewayInit.Do(func() {
		c.bankingGateway = actualsService.NewPlaidGateway(
			c.config.PlaidClientID,
			c.config.PlaidSecret,
			c.config.PlaidEnvironment,
			c.config.PlaidRequestsPerSec,
		)
	})
	return c.bankingGateway
}

// TransactionSink returns the actuals transaction sink.
func (c *Container) TransactionSink(ctx context.Context) (actualsUsecase.TransactionSink, error) {
	var err error
	c.transactionSinkInit.Do(func() {
		c.transactionSink, err = c.initTransactionSink(ctx)
		if err != nil {
			c.initErrors["transactionSink"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["transactionSink"]; exists {
		return nil, storedErr
	}
	return c.transactionSink, nil
}

// BalanceSink returns the opening-balance sink.
func (c *Container) BalanceSink(ctx context.Context) (actualsUsecase.BalanceSink, error) {
	var err error
	c.balanceSinkInit.Do(func() {
		c.balanceSink, err = c.initBalanceSink(ctx)
		if err != nil {
			c.initErrors["balanceSink"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["balanceSink"]; exists {
		return nil, storedErr
	}
	return c.balanceSink, nil
}

// PullActualsUseCase returns the actuals pull use case, metrics included.
func (c *Container) PullActualsUseCase(ctx context.Context) (actualsUsecase.PullActualsUseCase, error) {
	var err error
	c.pullActualsUseCaseInit.Do(func() {
		c.pullActualsUseCase, err = c.initPullActualsUseCase(ctx)
		if err != nil {
			c.initErrors["pullActualsUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pullActualsUseCase"]; exists {
		return nil, storedErr
	}
	return c.pullActualsUseCase, nil
}

// PullBalancesUseCase returns the opening-balance pull use case, metrics included.
func (c *Container) PullBalancesUseCase(ctx context.Context) (actualsUsecase.PullBalancesUseCase, error) {
	var err error
	c.pullBalancesUseCaseInit.Do(func() {
		c.pullBalancesUseCase, err = c.initPullBalancesUseCase(ctx)
		if err != nil {
			c.initErrors["pullBalancesUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pullBalancesUseCase"]; exists {
		return nil, storedErr
	}
	return c.pullBalancesUseCase, nil
}

// initTransactionSink creates the transaction sink on the configured bucket.
func (c *Container) initTransactionSink(ctx context.Context) (actualsUsecase.TransactionSink, error) {
	bucket, err := c.Bucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket for transaction sink: %w", err)
	}
	return actualsRepository.NewCSVTransactionSink(bucket), nil
}

// initBalanceSink creates the balance sink on the configured bucket.
func (c *Container) initBalanceSink(ctx context.Context) (actualsUsecase.BalanceSink, error) {
	bucket, err := c.Bucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket for balance sink: %w", err)
	}
	return actualsRepository.NewCSVBalanceSink(bucket), nil
}

// initPullActualsUseCase assembles the actuals pull use case with metrics decoration.
func (c *Container) initPullActualsUseCase(ctx context.Context) (actualsUsecase.PullActualsUseCase, error) {
	sink, err := c.TransactionSink(ctx)
	if err != nil {
		return nil, err
	}

	pipelineMetrics, err := c.PipelineMetrics()
	if err != nil {
		return nil, err
	}

	useCase := actualsUsecase.NewPullActualsUseCase(c.BankingGateway(), sink, c.Logger())
	return actualsUsecase.NewPullActualsUseCaseWithMetrics(useCase, pipelineMetrics), nil
}

// initPullBalancesUseCase assembles the opening-balance pull use case with metrics decoration.
func (c *Container) initPullBalancesUseCase(ctx context.Context) (actualsUsecase.PullBalancesUseCase, error) {
	sink, err := c.BalanceSink(ctx)
	if err != nil {
		return nil, err
	}

	pipelineMetrics, err := c.PipelineMetrics()
	if err != nil {
		return nil, err
	}

	useCase := actualsUsecase.NewPullBalancesUseCase(c.BankingGateway(), sink, c.Logger())
	return actualsUsecase.NewPullBalancesUseCaseWithMetrics(useCase, pipelineMetrics), nil
}

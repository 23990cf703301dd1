package app

import (
	"fmt"

	runlogRepository "github.com/allisson/liquidity/internal/runlog/repository"
	runlogUsecase "github.com/allisson/liquidity/internal/runlog/usecase"
)

// RunRepository returns the run ledger repository based on the database driver.
func (c *Container) RunRepository() (runlogUsecase.RunRepository, error) {
	var err error
	c.runRepositoryInit.Do(func() {
		c.runRepository, err = c.initRunRepository()
		if err != nil {
			c.initErrors["runRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["runRepository"]; exists {
		return nil, storedErr
	}
	return c.runRepository, nil
}

// RunLedger returns the run ledger. When no database is configured, a no-op
// ledger is returned so pipeline commands never depend on one.
func (c *Container) RunLedger() (runlogUsecase.RunLedger, error) {
	var err error
	c.runLedgerInit.Do(func() {
		c.runLedger, err = c.initRunLedger()
		if err != nil {
			c.initErrors["runLedger"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["runLedger"]; exists {
		return nil, storedErr
	}
	return c.runLedger, nil
}

// initRunRepository creates the run repository based on the database driver.
func (c *Container) initRunRepository() (runlogUsecase.RunRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for run repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return runlogRepository.NewPostgreSQLRunRepository(db), nil
	case "mysql":
		return runlogRepository.NewMySQLRunRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRunLedger assembles the run ledger.
func (c *Container) initRunLedger() (runlogUsecase.RunLedger, error) {
	if !c.config.DatabaseEnabled {
		return runlogUsecase.NewNoOpRunLedger(), nil
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, err
	}

	repo, err := c.RunRepository()
	if err != nil {
		return nil, err
	}

	return runlogUsecase.NewRunLedger(txManager, repo), nil
}

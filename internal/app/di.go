// Package app provides the dependency injection container for assembling
// pipeline components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gocloud.dev/blob"

	actualsService "github.com/allisson/liquidity/internal/actuals/service"
	actualsUsecase "github.com/allisson/liquidity/internal/actuals/usecase"
	"github.com/allisson/liquidity/internal/config"
	"github.com/allisson/liquidity/internal/database"
	forecastService "github.com/allisson/liquidity/internal/forecast/service"
	forecastUsecase "github.com/allisson/liquidity/internal/forecast/usecase"
	internalHTTP "github.com/allisson/liquidity/internal/http"
	"github.com/allisson/liquidity/internal/messaging"
	"github.com/allisson/liquidity/internal/metrics"
	"github.com/allisson/liquidity/internal/tabular"
	runlogUsecase "github.com/allisson/liquidity/internal/runlog/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger    *slog.Logger
	db        *sql.DB
	txManager database.TxManager
	bucket    *blob.Bucket
	publisher messaging.Publisher

	// Metrics
	metricsProvider *metrics.Provider
	pipelineMetrics metrics.PipelineMetrics
	metricsServer   *internalHTTP.MetricsServer

	// Services
	synthesizer    forecastService.Synthesizer
	bankingGateway actualsService.BankingGateway

	// Repositories
	eventSink       forecastUsecase.EventSink
	eventSource     forecastUsecase.EventSource
	transactionSink actualsUsecase.TransactionSink
	balanceSink     actualsUsecase.BalanceSink
	runRepository   runlogUsecase.RunRepository

	// Use Cases
	generateUseCase     forecastUsecase.GenerateUseCase
	publishUseCase      forecastUsecase.PublishUseCase
	pullActualsUseCase  actualsUsecase.PullActualsUseCase
	pullBalancesUseCase actualsUsecase.PullBalancesUseCase
	runLedger           runlogUsecase.RunLedger

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	txManagerInit           sync.Once
	bucketInit              sync.Once
	publisherInit           sync.Once
	metricsProviderInit     sync.Once
	pipelineMetricsInit     sync.Once
	metricsServerInit       sync.Once
	synthesizerInit         sync.Once
	bankingGatewayInit      sync.Once
	eventSinkInit           sync.Once
	eventSourceInit         sync.Once
	transactionSinkInit     sync.Once
	balanceSinkInit         sync.Once
	runRepositoryInit       sync.Once
	generateUseCaseInit     sync.Once
	publishUseCaseInit      sync.Once
	pullActualsUseCaseInit  sync.Once
	pullBalancesUseCaseInit sync.Once
	runLedgerInit           sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// Bucket returns the blob bucket holding tabular intermediates.
func (c *Container) Bucket(ctx context.Context) (*blob.Bucket, error) {
	var err error
	c.bucketInit.Do(func() {
		c.bucket, err = tabular.OpenBucket(ctx, c.config.BucketURL)
		if err != nil {
			c.initErrors["bucket"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["bucket"]; exists {
		return nil, storedErr
	}
	return c.bucket, nil
}

// Publisher returns the outbound topic publisher.
func (c *Container) Publisher(ctx context.Context) (messaging.Publisher, error) {
	var err error
	c.publisherInit.Do(func() {
		c.publisher, err = messaging.OpenTopic(ctx, c.config.TopicURL)
		if err != nil {
			c.initErrors["publisher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["publisher"]; exists {
		return nil, storedErr
	}
	return c.publisher, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// PipelineMetrics returns the pipeline metrics recorder. When metrics are
// disabled in the configuration, a no-op implementation is returned.
func (c *Container) PipelineMetrics() (metrics.PipelineMetrics, error) {
	var err error
	c.pipelineMetricsInit.Do(func() {
		c.pipelineMetrics, err = c.initPipelineMetrics()
		if err != nil {
			c.initErrors["pipelineMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["pipelineMetrics"]; exists {
		return nil, storedErr
	}
	return c.pipelineMetrics, nil
}

// MetricsServer returns the metrics HTTP server instance.
func (c *Container) MetricsServer() (*internalHTTP.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.publisher != nil {
		if err := c.publisher.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("topic shutdown: %w", err))
		}
	}

	if c.bucket != nil {
		if err := c.bucket.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("bucket close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initPipelineMetrics creates the pipeline metrics recorder.
func (c *Container) initPipelineMetrics() (metrics.PipelineMetrics, error) {
	if !c.config.MetricsEnabled {
		return metrics.NewNoOpPipelineMetrics(), nil
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider: %w", err)
	}

	return metrics.NewPipelineMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

// initMetricsServer creates the metrics HTTP server.
func (c *Container) initMetricsServer() (*internalHTTP.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider: %w", err)
	}

	return internalHTTP.NewMetricsServer(
		c.config.MetricsHost,
		c.config.MetricsPort,
		c.Logger(),
		provider,
	), nil
}

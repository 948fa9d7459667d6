// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/policies/internal/config"
	"github.com/allisson/policies/internal/database"
	"github.com/allisson/policies/internal/export"
	"github.com/allisson/policies/internal/http"
	"github.com/allisson/policies/internal/metrics"
	policyHTTP "github.com/allisson/policies/internal/policy/http"
	policyRepository "github.com/allisson/policies/internal/policy/repository"
	policyService "github.com/allisson/policies/internal/policy/service"
	policyUseCase "github.com/allisson/policies/internal/policy/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Repositories
	catalogRepo  policyUseCase.CatalogRepository
	documentRepo policyUseCase.DocumentRepository

	// Domain services
	compiler policyService.Compiler
	signer   policyService.DocumentSigner
	exporter policyUseCase.Exporter

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Use Cases
	catalogUseCase policyUseCase.CatalogUseCase
	compileUseCase policyUseCase.CompileUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	catalogRepoInit     sync.Once
	documentRepoInit    sync.Once
	compilerInit        sync.Once
	signerInit          sync.Once
	exporterInit        sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	catalogUseCaseInit  sync.Once
	compileUseCaseInit  sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
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
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		txManager, err := c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
			return
		}
		c.txManager = txManager
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// CatalogRepository returns the grant catalog repository instance.
func (c *Container) CatalogRepository() (policyUseCase.CatalogRepository, error) {
	c.catalogRepoInit.Do(func() {
		repo, err := c.initCatalogRepository()
		if err != nil {
			c.initErrors["catalogRepo"] = err
			return
		}
		c.catalogRepo = repo
	})
	if storedErr, exists := c.initErrors["catalogRepo"]; exists {
		return nil, storedErr
	}
	return c.catalogRepo, nil
}

// DocumentRepository returns the compiled document repository instance.
func (c *Container) DocumentRepository() (policyUseCase.DocumentRepository, error) {
	c.documentRepoInit.Do(func() {
		repo, err := c.initDocumentRepository()
		if err != nil {
			c.initErrors["documentRepo"] = err
			return
		}
		c.documentRepo = repo
	})
	if storedErr, exists := c.initErrors["documentRepo"]; exists {
		return nil, storedErr
	}
	return c.documentRepo, nil
}

// Compiler returns the statement compiler service.
func (c *Container) Compiler() policyService.Compiler {
	c.compilerInit.Do(func() {
		c.compiler = policyService.NewStatementCompiler()
	})
	return c.compiler
}

// DocumentSigner returns the document signer service.
func (c *Container) DocumentSigner() policyService.DocumentSigner {
	c.signerInit.Do(func() {
		c.signer = policyService.NewDocumentSigner()
	})
	return c.signer
}

// Exporter returns the compiled document exporter.
// Returns nil when no export bucket is configured.
func (c *Container) Exporter() policyUseCase.Exporter {
	c.exporterInit.Do(func() {
		if c.config.ExportBucketURL == "" {
			return
		}
		c.exporter = export.NewBlobExporter(c.config.ExportBucketURL, c.Logger())
	})
	return c.exporter
}

// MetricsProvider returns the OpenTelemetry metrics provider.
// Returns nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// Returns a no-op implementation when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// CatalogUseCase returns the grant catalog use case instance.
func (c *Container) CatalogUseCase() (policyUseCase.CatalogUseCase, error) {
	c.catalogUseCaseInit.Do(func() {
		useCase, err := c.initCatalogUseCase()
		if err != nil {
			c.initErrors["catalogUseCase"] = err
			return
		}
		c.catalogUseCase = useCase
	})
	if storedErr, exists := c.initErrors["catalogUseCase"]; exists {
		return nil, storedErr
	}
	return c.catalogUseCase, nil
}

// CompileUseCase returns the policy compilation use case instance.
func (c *Container) CompileUseCase() (policyUseCase.CompileUseCase, error) {
	c.compileUseCaseInit.Do(func() {
		useCase, err := c.initCompileUseCase()
		if err != nil {
			c.initErrors["compileUseCase"] = err
			return
		}
		c.compileUseCase = useCase
	})
	if storedErr, exists := c.initErrors["compileUseCase"]; exists {
		return nil, storedErr
	}
	return c.compileUseCase, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance.
// Returns nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
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

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
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

// initCatalogRepository creates the grant catalog repository instance.
func (c *Container) initCatalogRepository() (policyUseCase.CatalogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for catalog repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return policyRepository.NewMySQLCatalogRepository(db), nil
	case "postgres":
		return policyRepository.NewPostgreSQLCatalogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initDocumentRepository creates the compiled document repository instance.
func (c *Container) initDocumentRepository() (policyUseCase.DocumentRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for document repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return policyRepository.NewMySQLDocumentRepository(db), nil
	case "postgres":
		return policyRepository.NewPostgreSQLDocumentRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCatalogUseCase creates the catalog use case with all its dependencies.
func (c *Container) initCatalogUseCase() (policyUseCase.CatalogUseCase, error) {
	catalogRepo, err := c.CatalogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog repository for catalog use case: %w", err)
	}

	useCase := policyUseCase.NewCatalogUseCase(catalogRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for catalog use case: %w", err)
		}
		useCase = policyUseCase.NewCatalogUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

// initCompileUseCase creates the compile use case with all its dependencies.
func (c *Container) initCompileUseCase() (policyUseCase.CompileUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for compile use case: %w", err)
	}

	catalogRepo, err := c.CatalogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog repository for compile use case: %w", err)
	}

	documentRepo, err := c.DocumentRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get document repository for compile use case: %w", err)
	}

	var signingSecret []byte
	if c.config.SigningSecret != "" {
		signingSecret = []byte(c.config.SigningSecret)
	}

	useCase := policyUseCase.NewCompileUseCase(
		txManager,
		catalogRepo,
		documentRepo,
		c.Compiler(),
		c.DocumentSigner(),
		c.Exporter(),
		signingSecret,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for compile use case: %w", err)
		}
		useCase = policyUseCase.NewCompileUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	catalogUseCase, err := c.CatalogUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog use case for http server: %w", err)
	}

	compileUseCase, err := c.CompileUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get compile use case for http server: %w", err)
	}

	routerConfig := http.RouterConfig{
		Logger:                  logger,
		CatalogHandler:          policyHTTP.NewCatalogHandler(catalogUseCase, logger),
		CompileHandler:          policyHTTP.NewCompileHandler(compileUseCase, logger),
		DocumentHandler:         policyHTTP.NewDocumentHandler(compileUseCase, logger),
		CORSEnabled:             c.config.CORSEnabled,
		CORSAllowOrigins:        c.config.CORSAllowOrigins,
		RateLimitEnabled:        c.config.RateLimitEnabled,
		RateLimitRequestsPerSec: c.config.RateLimitRequestsPerSec,
		RateLimitBurst:          c.config.RateLimitBurst,
	}

	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
		if provider != nil {
			routerConfig.MetricsMiddleware = metrics.HTTPMetricsMiddleware(provider.MeterProvider(), c.config.MetricsNamespace)
		}
	}

	router := http.SetupRouter(routerConfig)

	return http.NewServer(c.config.ServerHost, c.config.ServerPort, logger, router), nil
}

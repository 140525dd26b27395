// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/ewallet/config"
	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/application/ledger"
	"github.com/finance-tracker/ewallet/internal/application/usecase/budget"
	"github.com/finance-tracker/ewallet/internal/application/usecase/category"
	"github.com/finance-tracker/ewallet/internal/application/usecase/dashboard"
	"github.com/finance-tracker/ewallet/internal/application/usecase/data"
	"github.com/finance-tracker/ewallet/internal/application/usecase/preferences"
	"github.com/finance-tracker/ewallet/internal/application/usecase/syncqueue"
	"github.com/finance-tracker/ewallet/internal/application/usecase/transaction"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/infra/cache"
	"github.com/finance-tracker/ewallet/internal/infra/db"
	"github.com/finance-tracker/ewallet/internal/infra/server/router"
	"github.com/finance-tracker/ewallet/internal/integration/adapters"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/middleware"
	"github.com/finance-tracker/ewallet/internal/integration/metrics"
	"github.com/finance-tracker/ewallet/internal/integration/persistence"
	"github.com/finance-tracker/ewallet/internal/integration/persistence/model"
)

// Injector holds all application dependencies.
type Injector struct {
	Config  *config.Config
	Storage adapter.KeyValueStore
	Ledger  *ledger.Store
	Router  *router.Router

	closers []func() error
}

// NewInjector opens the configured storage backend and wires the
// application on top of it.
func NewInjector(cfg *config.Config) (*Injector, error) {
	kv, closer, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}

	injector := Wire(cfg, kv, adapters.SystemClock{})
	if closer != nil {
		injector.closers = append(injector.closers, closer)
	}
	return injector, nil
}

// OpenStorage connects the key-value backend selected by cfg.Storage.Driver.
// The returned closer is nil for backends holding no connection.
func OpenStorage(cfg *config.Config) (adapter.KeyValueStore, func() error, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		var (
			database *db.Database
			err      error
		)
		if cfg.Storage.Driver == config.StorageDriverSQLite {
			database, err = db.NewSQLiteConnection(&cfg.Storage)
		} else {
			database, err = db.NewPostgresConnection(&cfg.Storage)
		}
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(&model.KeyValueModel{}); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		slog.Info("Database migrations completed successfully")
		return persistence.NewGormKeyValueStore(database.DB(), cfg.Storage.KeyPrefix), database.Close, nil

	case config.StorageDriverRedis:
		client, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return persistence.NewRedisKeyValueStore(client, cfg.Storage.KeyPrefix), client.Close, nil

	case config.StorageDriverMemory:
		slog.Warn("Using in-memory storage, data will not survive a restart")
		return persistence.NewMemoryKeyValueStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", domainerror.ErrUnsupportedStorageDriver, cfg.Storage.Driver)
	}
}

// Wire builds the ledger, use cases, controllers and router over kv.
func Wire(cfg *config.Config, kv adapter.KeyValueStore, clock adapter.Clock) *Injector {
	// Metrics
	var (
		ledgerMetrics   adapter.LedgerMetrics
		requestObserver middleware.RequestObserver
		routerOpts      router.Options
	)
	if cfg.Metrics.Enabled {
		promLedger := metrics.NewPrometheusLedgerMetrics()
		ledgerMetrics = promLedger
		requestObserver = metrics.NewHTTPMetrics(promLedger.Registry())
		routerOpts.MetricsHandler = promLedger.Handler()
		routerOpts.MetricsPath = cfg.Metrics.Path
	}
	routerOpts.RequestObserver = requestObserver
	routerOpts.DataRateLimiter = middleware.NewRateLimiter(cfg.Server.DataRateLimit, cfg.Server.DataRateWindow, clock)

	// Ledger store
	store := ledger.NewStore(kv, ledger.Options{
		Clock:         clock,
		IDGenerator:   adapters.UUIDGenerator{},
		Metrics:       ledgerMetrics,
		ReadTimeout:   cfg.Storage.OpTimeout,
		WriteTimeout:  cfg.Storage.OpTimeout,
		RetryInterval: cfg.Ledger.RetryInterval,
	})

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(store)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(store, clock)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(store)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(store)
	replaceTransactionsUseCase := transaction.NewReplaceTransactionsUseCase(store)

	// Create catalog, budget and preferences use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(store)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(store)
	setBudgetsUseCase := budget.NewSetBudgetsUseCase(store)
	getPreferencesUseCase := preferences.NewGetPreferencesUseCase(store)
	updatePreferencesUseCase := preferences.NewUpdatePreferencesUseCase(store)
	replacePreferencesUseCase := preferences.NewReplacePreferencesUseCase(store)
	completeOnboardingUseCase := preferences.NewCompleteOnboardingUseCase(store)

	// Create dashboard use cases
	ledgerSummaryUseCase := dashboard.NewGetLedgerSummaryUseCase(store)
	periodSummaryUseCase := dashboard.NewGetPeriodSummaryUseCase(store, clock)
	categoryBreakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(store, clock)
	monthlyTotalsUseCase := dashboard.NewGetMonthlyTotalsUseCase(store, clock)
	balanceTrendUseCase := dashboard.NewGetBalanceTrendUseCase(store, clock)

	// Create data and sync use cases
	exportDataUseCase := data.NewExportDataUseCase(store, clock)
	exportWorkbookUseCase := data.NewExportWorkbookUseCase(store, clock)
	importDataUseCase := data.NewImportDataUseCase(store)
	clearDataUseCase := data.NewClearDataUseCase(store)
	syncStatusUseCase := syncqueue.NewGetStatusUseCase(store)
	setOnlineUseCase := syncqueue.NewSetOnlineUseCase(store)
	acknowledgeUseCase := syncqueue.NewAcknowledgeUseCase(store)

	// Create controllers
	ledgerReady := func() bool {
		select {
		case <-store.Ready():
			return true
		default:
			return false
		}
	}
	healthController := controller.NewHealthController(ledgerReady, kv.Ping)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		replaceTransactionsUseCase,
	)

	categoryController := controller.NewCategoryController(listCategoriesUseCase)
	budgetController := controller.NewBudgetController(listBudgetsUseCase, setBudgetsUseCase)

	preferencesController := controller.NewPreferencesController(
		getPreferencesUseCase,
		updatePreferencesUseCase,
		replacePreferencesUseCase,
		completeOnboardingUseCase,
	)

	dashboardController := controller.NewDashboardController(
		ledgerSummaryUseCase,
		periodSummaryUseCase,
		categoryBreakdownUseCase,
		monthlyTotalsUseCase,
		balanceTrendUseCase,
	)

	dataController := controller.NewDataController(
		exportDataUseCase,
		exportWorkbookUseCase,
		importDataUseCase,
		clearDataUseCase,
	)

	syncController := controller.NewSyncController(syncStatusUseCase, setOnlineUseCase, acknowledgeUseCase)

	// Create router
	r := router.NewRouter(
		healthController,
		transactionController,
		categoryController,
		budgetController,
		preferencesController,
		dashboardController,
		dataController,
		syncController,
		routerOpts,
	)

	return &Injector{
		Config:  cfg,
		Storage: kv,
		Ledger:  store,
		Router:  r,
	}
}

// Close flushes pending ledger writes and releases the storage connection.
func (i *Injector) Close(ctx context.Context) error {
	var errs []error
	if err := i.Ledger.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to flush ledger: %w", err))
	}
	for _, closer := range i.closers {
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	transactionController *controller.TransactionController
	categoryController    *controller.CategoryController
	budgetController      *controller.BudgetController
	preferencesController *controller.PreferencesController
	dashboardController   *controller.DashboardController
	dataController        *controller.DataController
	syncController        *controller.SyncController
	dataRateLimiter       *middleware.RateLimiter
	requestObserver       middleware.RequestObserver
	metricsHandler        http.Handler
	metricsPath           string
}

// Options carries the optional pieces of the router.
type Options struct {
	DataRateLimiter *middleware.RateLimiter
	RequestObserver middleware.RequestObserver
	MetricsHandler  http.Handler
	MetricsPath     string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	categoryController *controller.CategoryController,
	budgetController *controller.BudgetController,
	preferencesController *controller.PreferencesController,
	dashboardController *controller.DashboardController,
	dataController *controller.DataController,
	syncController *controller.SyncController,
	opts Options,
) *Router {
	return &Router{
		healthController:      healthController,
		transactionController: transactionController,
		categoryController:    categoryController,
		budgetController:      budgetController,
		preferencesController: preferencesController,
		dashboardController:   dashboardController,
		dataController:        dataController,
		syncController:        syncController,
		dataRateLimiter:       opts.DataRateLimiter,
		requestObserver:       opts.RequestObserver,
		metricsHandler:        opts.MetricsHandler,
		metricsPath:           opts.MetricsPath,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Request logging goes through slog instead of gin's logger
	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.Observe(r.requestObserver))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)

	if r.metricsHandler != nil {
		path := r.metricsPath
		if path == "" {
			path = "/metrics"
		}
		r.engine.GET(path, gin.WrapH(r.metricsHandler))
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", r.transactionController.List)
			transactions.POST("", r.transactionController.Create)
			transactions.PUT("", r.transactionController.Replace)
			transactions.PUT("/:id", r.transactionController.Update)
			transactions.DELETE("/:id", r.transactionController.Delete)
		}

		v1.GET("/categories", r.categoryController.List)

		budgets := v1.Group("/budgets")
		{
			budgets.GET("", r.budgetController.List)
			budgets.PUT("", r.budgetController.Set)
		}

		preferences := v1.Group("/preferences")
		{
			preferences.GET("", r.preferencesController.Get)
			preferences.PUT("", r.preferencesController.Replace)
			preferences.PATCH("", r.preferencesController.Update)
		}
		v1.POST("/onboarding", r.preferencesController.CompleteOnboarding)

		v1.GET("/summary", r.dashboardController.GetLedgerSummary)
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/summary", r.dashboardController.GetPeriodSummary)
			dashboard.GET("/categories", r.dashboardController.GetCategoryBreakdown)
			dashboard.GET("/monthly", r.dashboardController.GetMonthlyTotals)
			dashboard.GET("/trend", r.dashboardController.GetBalanceTrend)
		}

		data := v1.Group("/data")
		{
			data.GET("/export", r.dataController.Export)
			data.GET("/export.xlsx", r.dataController.ExportWorkbook)

			// Import and clear rewrite the whole ledger
			bulk := data.Group("")
			if r.dataRateLimiter != nil {
				bulk.Use(r.dataRateLimiter.Middleware())
			}
			bulk.POST("/import", r.dataController.Import)
			bulk.DELETE("", r.dataController.Clear)
		}

		sync := v1.Group("/sync")
		{
			sync.GET("", r.syncController.Status)
			sync.PUT("/online", r.syncController.SetOnline)
			sync.DELETE("/:id", r.syncController.Acknowledge)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budget-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	taxController      *controller.TaxController
	incomeController   *controller.IncomeController
	categoryController *controller.CategoryController
	expenseController  *controller.ExpenseController
	summaryController  *controller.SummaryController
	rateLimiter        *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	taxController *controller.TaxController,
	incomeController *controller.IncomeController,
	categoryController *controller.CategoryController,
	expenseController *controller.ExpenseController,
	summaryController *controller.SummaryController,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:   healthController,
		taxController:      taxController,
		incomeController:   incomeController,
		categoryController: categoryController,
		expenseController:  expenseController,
		summaryController:  summaryController,
		rateLimiter:        rateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery(), middleware.RequestLogger())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	// Mutations share one limiter per client.
	limit := func(c *gin.Context) { c.Next() }
	if r.rateLimiter != nil {
		limit = r.rateLimiter.Middleware()
	}

	v1.GET("/tax/breakdown", r.taxController.Breakdown)

	income := v1.Group("/income")
	{
		income.GET("", r.incomeController.Get)
		income.PUT("", limit, r.incomeController.Save)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", limit, r.categoryController.Create)
		categories.PATCH("/:id", limit, r.categoryController.Update)
		categories.DELETE("/:id", limit, r.categoryController.Delete)
		categories.GET("/:id/expenses", r.expenseController.List)
		categories.POST("/:id/expenses", limit, r.expenseController.Create)
	}

	expenses := v1.Group("/expenses")
	{
		expenses.PATCH("/:id", limit, r.expenseController.Update)
		expenses.DELETE("/:id", limit, r.expenseController.Delete)
	}

	v1.GET("/summary", r.summaryController.Get)
}

// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/budget-ledger/backend/config"
	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/application/usecase/category"
	"github.com/budget-ledger/backend/internal/application/usecase/dashboard"
	"github.com/budget-ledger/backend/internal/application/usecase/expense"
	"github.com/budget-ledger/backend/internal/application/usecase/income"
	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/budget-ledger/backend/internal/domain/tax"
	"github.com/budget-ledger/backend/internal/infra/server/router"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/middleware"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	Store       adapter.BudgetStore
	Reconciler  *reconciliation.Reconciler
	RateLimiter *middleware.RateLimiter
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The reconciler starts empty; callers load the stored ledger before serving.
func NewInjector(cfg *config.Config, store adapter.BudgetStore, storageHealthChecker func() bool) (*Injector, error) {
	schedule, err := tax.LoadSchedule(cfg.Tax.ScheduleFile)
	if err != nil {
		return nil, err
	}
	calculator := tax.NewCalculator(schedule)

	reconciler := reconciliation.NewReconciler(store,
		reconciliation.WithCommitTimeout(cfg.Reconciler.CommitTimeout),
	)

	// Create income use cases
	computeNetPayUseCase := income.NewComputeNetPayUseCase(calculator)
	getIncomeUseCase := income.NewGetIncomeUseCase(store)
	saveIncomeUseCase := income.NewSaveIncomeUseCase(store, calculator)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(reconciler)
	createCategoryUseCase := category.NewCreateCategoryUseCase(reconciler)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(reconciler)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(reconciler)

	// Create expense use cases
	listExpensesUseCase := expense.NewListExpensesUseCase(reconciler)
	addExpenseUseCase := expense.NewAddExpenseUseCase(reconciler)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(reconciler)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(reconciler)

	getSummaryUseCase := dashboard.NewGetSummaryUseCase(store, dashboard.VisibleCategories(reconciler))

	// Create controllers
	healthController := controller.NewHealthController(cfg.Storage.Backend, storageHealthChecker, reconciler.InFlight)
	taxController := controller.NewTaxController(computeNetPayUseCase)
	incomeController := controller.NewIncomeController(getIncomeUseCase, saveIncomeUseCase)
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	expenseController := controller.NewExpenseController(
		listExpensesUseCase,
		addExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
	)
	summaryController := controller.NewSummaryController(getSummaryUseCase)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	r := router.NewRouter(
		healthController,
		taxController,
		incomeController,
		categoryController,
		expenseController,
		summaryController,
		rateLimiter,
	)

	return &Injector{
		Config:      cfg,
		Store:       store,
		Reconciler:  reconciler,
		RateLimiter: rateLimiter,
		Router:      r,
	}, nil
}

package dashboard

import (
	"context"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// IncomeSource loads the current pay breakdown.
type IncomeSource interface {
	LoadIncome(ctx context.Context) (*entity.PayBreakdown, error)
}

// CategorySource loads the categories a summary is built from.
type CategorySource interface {
	LoadCategories(ctx context.Context) (entity.Categories, error)
}

// LedgerView exposes the visible ledger snapshot.
type LedgerView interface {
	Visible() entity.Categories
}

// CategoryLoader reads the durable ledger, as a BudgetStore does.
type CategoryLoader interface {
	LoadCategoriesWithExpenses(ctx context.Context) (entity.Categories, error)
}

// VisibleCategories serves the reconciler's visible snapshot, speculative
// writes included.
func VisibleCategories(view LedgerView) CategorySource {
	return visibleCategories{view: view}
}

// StoredCategories reads categories straight from the store, bypassing any
// in-memory state.
func StoredCategories(loader CategoryLoader) CategorySource {
	return storedCategories{loader: loader}
}

type visibleCategories struct {
	view LedgerView
}

func (v visibleCategories) LoadCategories(context.Context) (entity.Categories, error) {
	return v.view.Visible(), nil
}

type storedCategories struct {
	loader CategoryLoader
}

func (s storedCategories) LoadCategories(ctx context.Context) (entity.Categories, error) {
	return s.loader.LoadCategoriesWithExpenses(ctx)
}

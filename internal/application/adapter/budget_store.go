// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// BudgetStore is the durable persistence collaborator of the budget ledger.
// Entities carry their client-assigned ids so that the stored record matches the
// speculative one. Any returned error means the write was not committed.
type BudgetStore interface {
	// CreateCategory persists a new category without expenses.
	CreateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error)

	// UpdateCategory persists a category's name and planned amount.
	UpdateCategory(ctx context.Context, category *entity.Category) (*entity.Category, error)

	// DeleteCategory removes a category and all of its expenses.
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// AddExpense persists a new expense.
	AddExpense(ctx context.Context, expense *entity.Expense) (*entity.Expense, error)

	// UpdateExpense persists an expense's amount, description and date.
	UpdateExpense(ctx context.Context, expense *entity.Expense) (*entity.Expense, error)

	// DeleteExpense removes an expense.
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	// LoadIncome returns the current pay breakdown, or nil when none was saved.
	LoadIncome(ctx context.Context) (*entity.PayBreakdown, error)

	// SaveIncome stores breakdown as the current income, retiring the previous one.
	SaveIncome(ctx context.Context, breakdown entity.PayBreakdown) (*entity.PayBreakdown, error)

	// LoadCategoriesWithExpenses returns every category with its expenses embedded.
	LoadCategoriesWithExpenses(ctx context.Context) (entity.Categories, error)
}

// HealthChecker is implemented by stores that can report their connectivity.
type HealthChecker interface {
	HealthCheck() bool
}

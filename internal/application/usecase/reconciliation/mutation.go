package reconciliation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// Mutation is a ledger change paired with the durable write that persists it.
// Apply must be deterministic: it is replayed against other baselines when
// concurrent mutations settle, so any new id is fixed when the Mutation is built.
type Mutation struct {
	Name    string
	Subject uuid.UUID
	Apply   func(entity.Categories) (entity.Categories, error)
	// Commit persists the change. It receives the speculative snapshot the
	// mutation produced.
	Commit func(ctx context.Context, store adapter.BudgetStore, speculative entity.Categories) error
}

// CreateCategory builds a mutation that creates a category.
func CreateCategory(name string, plannedAmount decimal.Decimal) Mutation {
	id := uuid.New()
	return Mutation{
		Name:    "create_category",
		Subject: id,
		Apply: func(categories entity.Categories) (entity.Categories, error) {
			return ledger.CreateCategory(categories, ledger.CategoryDraft{ID: id, Name: name, PlannedAmount: plannedAmount})
		},
		Commit: func(ctx context.Context, store adapter.BudgetStore, speculative entity.Categories) error {
			category, err := categoryIn(speculative, id)
			if err != nil {
				return err
			}
			category.Expenses = nil
			_, err = store.CreateCategory(ctx, &category)
			return err
		},
	}
}

// UpdateCategory builds a mutation that renames and replans a category.
func UpdateCategory(id uuid.UUID, name string, plannedAmount decimal.Decimal) Mutation {
	return Mutation{
		Name:    "update_category",
		Subject: id,
		Apply: func(categories entity.Categories) (entity.Categories, error) {
			return ledger.UpdateCategory(categories, id, name, plannedAmount)
		},
		Commit: func(ctx context.Context, store adapter.BudgetStore, speculative entity.Categories) error {
			category, err := categoryIn(speculative, id)
			if err != nil {
				return err
			}
			_, err = store.UpdateCategory(ctx, &category)
			return err
		},
	}
}

// DeleteCategory builds a mutation that deletes a category and its expenses.
func DeleteCategory(id uuid.UUID) Mutation {
	return Mutation{
		Name:    "delete_category",
		Subject: id,
		Apply: func(categories entity.Categories) (entity.Categories, error) {
			return ledger.DeleteCategory(categories, id)
		},
		Commit: func(ctx context.Context, store adapter.BudgetStore, _ entity.Categories) error {
			return store.DeleteCategory(ctx, id)
		},
	}
}

// AddExpense builds a mutation that records an expense against a category.
func AddExpense(categoryID uuid.UUID, amount decimal.Decimal, description string, date time.Time) Mutation {
	id := uuid.New()
	return Mutation{
		Name:    "add_expense",
		Subject: id,
		Apply: func(categories entity.Categories) (entity.Categories, error) {
			return ledger.AddExpense(categories, ledger.ExpenseDraft{
				ID:          id,
				CategoryID:  categoryID,
				Amount:      amount,
				Description: description,
				Date:        date,
			})
		},
		Commit: func(ctx context.Context, store adapter.BudgetStore, speculative entity.Categories) error {
			expense, err := expenseIn(speculative, id)
			if err != nil {
				return err
			}
			_, err = store.AddExpense(ctx, &expense)
			return err
		},
	}
}

// UpdateExpense builds a mutation that replaces an expense's fields.
func UpdateExpense(id uuid.UUID, amount decimal.Decimal, description string, date time.Time) Mutation {
	return Mutation{
		Name:    "update_expense",
		Subject: id,
		Apply: func(categories entity.Categories) (entity.Categories, error) {
			return ledger.UpdateExpense(categories, id, amount, description, date)
		},
		Commit: func(ctx context.Context, store adapter.BudgetStore, speculative entity.Categories) error {
			expense, err := expenseIn(speculative, id)
			if err != nil {
				return err
			}
			_, err = store.UpdateExpense(ctx, &expense)
			return err
		},
	}
}

// DeleteExpense builds a mutation that removes an expense.
func DeleteExpense(id uuid.UUID) Mutation {
	return Mutation{
		Name:    "delete_expense",
		Subject: id,
		Apply: func(categories entity.Categories) (entity.Categories, error) {
			return ledger.DeleteExpense(categories, id)
		},
		Commit: func(ctx context.Context, store adapter.BudgetStore, _ entity.Categories) error {
			return store.DeleteExpense(ctx, id)
		},
	}
}

func categoryIn(categories entity.Categories, id uuid.UUID) (entity.Category, error) {
	category, ok := ledger.FindCategory(categories, id)
	if !ok {
		return entity.Category{}, fmt.Errorf("category %s missing from speculative snapshot", id)
	}
	return category, nil
}

func expenseIn(categories entity.Categories, id uuid.UUID) (entity.Expense, error) {
	expense, ok := ledger.FindExpense(categories, id)
	if !ok {
		return entity.Expense{}, fmt.Errorf("expense %s missing from speculative snapshot", id)
	}
	return expense, nil
}

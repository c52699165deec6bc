// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category represents a budget bucket with a planned amount and the expenses it owns.
// ActualSpent is derived from Expenses and is never set directly by callers.
type Category struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	PlannedAmount decimal.Decimal `json:"planned_amount"`
	ActualSpent   decimal.Decimal `json:"actual_spent"`
	Expenses      []Expense       `json:"expenses"`
}

// NewCategory creates a new Category entity with no expenses.
// A nil id is replaced with a freshly generated one.
func NewCategory(id uuid.UUID, name string, plannedAmount decimal.Decimal) Category {
	if id == uuid.Nil {
		id = uuid.New()
	}

	return Category{
		ID:            id,
		Name:          strings.TrimSpace(name),
		PlannedAmount: plannedAmount,
		ActualSpent:   decimal.Zero,
		Expenses:      []Expense{},
	}
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	expenses := make([]Expense, len(c.Expenses))
	copy(expenses, c.Expenses)
	c.Expenses = expenses
	return c
}

// SumExpenses folds the expense amounts of the category.
func (c Category) SumExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range c.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Recomputed returns the category with ActualSpent recomputed from its expenses.
func (c Category) Recomputed() Category {
	c.ActualSpent = c.SumExpenses()
	return c
}

// Categories is an immutable snapshot of the ledger's categories.
// Operations that change the ledger return a new Categories value.
type Categories []Category

// Clone returns a deep copy of the snapshot.
func (cs Categories) Clone() Categories {
	out := make(Categories, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}

// IndexOf returns the position of the category with the given id, or -1.
func (cs Categories) IndexOf(id uuid.UUID) int {
	for i := range cs {
		if cs[i].ID == id {
			return i
		}
	}
	return -1
}

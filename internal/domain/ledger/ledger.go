// Package ledger maintains budget categories and their expenses.
//
// Every mutation takes a Categories snapshot and returns a new one; the input is
// never modified. After each successful call, every category's ActualSpent equals
// the sum of its expense amounts. A failed call returns a nil snapshot and an error
// and has no effect.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// CategoryDraft describes a category to create. A nil ID is generated.
type CategoryDraft struct {
	ID            uuid.UUID
	Name          string
	PlannedAmount decimal.Decimal
}

// ExpenseDraft describes an expense to add. A nil ID is generated.
type ExpenseDraft struct {
	ID          uuid.UUID
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// CreateCategory appends a new, empty category.
func CreateCategory(categories entity.Categories, draft CategoryDraft) (entity.Categories, error) {
	if err := validateCategory(draft.Name, draft.PlannedAmount); err != nil {
		return nil, err
	}
	if err := ensureUniqueName(categories, draft.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if draft.ID != uuid.Nil && categories.IndexOf(draft.ID) >= 0 {
		return nil, duplicateID("category", draft.ID)
	}

	out := categories.Clone()
	out = append(out, entity.NewCategory(draft.ID, draft.Name, draft.PlannedAmount))
	return out, nil
}

// UpdateCategory renames and replans a category. The uniqueness check ignores the
// category being edited, so re-applying identical values yields an equal snapshot.
func UpdateCategory(categories entity.Categories, id uuid.UUID, name string, plannedAmount decimal.Decimal) (entity.Categories, error) {
	idx := categories.IndexOf(id)
	if idx < 0 {
		return nil, categoryNotFound(id)
	}
	if err := validateCategory(name, plannedAmount); err != nil {
		return nil, err
	}
	if err := ensureUniqueName(categories, name, id); err != nil {
		return nil, err
	}

	out := categories.Clone()
	out[idx].Name = strings.TrimSpace(name)
	out[idx].PlannedAmount = plannedAmount
	return out, nil
}

// DeleteCategory removes a category together with all of its expenses.
func DeleteCategory(categories entity.Categories, id uuid.UUID) (entity.Categories, error) {
	idx := categories.IndexOf(id)
	if idx < 0 {
		return nil, categoryNotFound(id)
	}

	out := make(entity.Categories, 0, len(categories)-1)
	for i, c := range categories {
		if i != idx {
			out = append(out, c.Clone())
		}
	}
	return out, nil
}

// AddExpense appends an expense to its category and recomputes the category's spend.
func AddExpense(categories entity.Categories, draft ExpenseDraft) (entity.Categories, error) {
	if err := validateExpense(draft.Amount, draft.Description, draft.Date); err != nil {
		return nil, err
	}
	idx := categories.IndexOf(draft.CategoryID)
	if idx < 0 {
		return nil, categoryNotFound(draft.CategoryID)
	}
	if draft.ID != uuid.Nil {
		if _, _, found := locateExpense(categories, draft.ID); found {
			return nil, duplicateID("expense", draft.ID)
		}
	}

	out := categories.Clone()
	expense := entity.NewExpense(draft.ID, draft.CategoryID, draft.Amount, draft.Description, draft.Date)
	out[idx].Expenses = append(out[idx].Expenses, expense)
	out[idx] = out[idx].Recomputed()
	return out, nil
}

// UpdateExpense replaces the amount, description and date of an expense, wherever
// it lives, and recomputes its category's spend. An unchanged date is not
// re-checked for plausibility.
func UpdateExpense(categories entity.Categories, expenseID uuid.UUID, amount decimal.Decimal, description string, date time.Time) (entity.Categories, error) {
	ci, ei, found := locateExpense(categories, expenseID)
	if !found {
		return nil, expenseNotFound(expenseID)
	}
	if err := validateExpenseUpdate(amount, description, date, categories[ci].Expenses[ei].Date); err != nil {
		return nil, err
	}

	out := categories.Clone()
	current := out[ci].Expenses[ei]
	out[ci].Expenses[ei] = entity.NewExpense(current.ID, current.CategoryID, amount, description, date)
	out[ci] = out[ci].Recomputed()
	return out, nil
}

// DeleteExpense removes an expense and recomputes its category's spend.
func DeleteExpense(categories entity.Categories, expenseID uuid.UUID) (entity.Categories, error) {
	ci, ei, found := locateExpense(categories, expenseID)
	if !found {
		return nil, expenseNotFound(expenseID)
	}

	out := categories.Clone()
	expenses := out[ci].Expenses
	out[ci].Expenses = append(expenses[:ei:ei], expenses[ei+1:]...)
	out[ci] = out[ci].Recomputed()
	return out, nil
}

// FindCategory returns the category with the given id.
func FindCategory(categories entity.Categories, id uuid.UUID) (entity.Category, bool) {
	idx := categories.IndexOf(id)
	if idx < 0 {
		return entity.Category{}, false
	}
	return categories[idx].Clone(), true
}

// FindExpense returns the expense with the given id from any category.
func FindExpense(categories entity.Categories, id uuid.UUID) (entity.Expense, bool) {
	ci, ei, found := locateExpense(categories, id)
	if !found {
		return entity.Expense{}, false
	}
	return categories[ci].Expenses[ei], true
}

// ExpensesByCategory returns a copy of a category's expenses. An unknown category
// has no expenses.
func ExpensesByCategory(categories entity.Categories, categoryID uuid.UUID) []entity.Expense {
	idx := categories.IndexOf(categoryID)
	if idx < 0 {
		return []entity.Expense{}
	}
	out := make([]entity.Expense, len(categories[idx].Expenses))
	copy(out, categories[idx].Expenses)
	return out
}

// CheckInvariant verifies that every category's ActualSpent equals the sum of its
// expenses, that every expense points back at its owning category and that no two
// category names collide case-insensitively.
func CheckInvariant(categories entity.Categories) error {
	seen := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if other, ok := seen[key]; ok {
			return fmt.Errorf("categories %s and %s share the name %q", other, c.ID, c.Name)
		}
		seen[key] = c.ID

		if sum := c.SumExpenses(); !c.ActualSpent.Equal(sum) {
			return fmt.Errorf("category %s: actual spent %s does not match expense total %s", c.ID, c.ActualSpent, sum)
		}
		for _, e := range c.Expenses {
			if e.CategoryID != c.ID {
				return fmt.Errorf("expense %s is stored under category %s but references %s", e.ID, c.ID, e.CategoryID)
			}
		}
	}
	return nil
}

// Normalize returns a copy of the snapshot with every category's spend recomputed.
// Stores use it on load so that the invariant holds for data written elsewhere.
func Normalize(categories entity.Categories) entity.Categories {
	out := categories.Clone()
	for i := range out {
		out[i] = out[i].Recomputed()
	}
	return out
}

func locateExpense(categories entity.Categories, expenseID uuid.UUID) (int, int, bool) {
	for ci := range categories {
		for ei := range categories[ci].Expenses {
			if categories[ci].Expenses[ei].ID == expenseID {
				return ci, ei, true
			}
		}
	}
	return -1, -1, false
}

func ensureUniqueName(categories entity.Categories, name string, exclude uuid.UUID) error {
	trimmed := strings.TrimSpace(name)
	for _, c := range categories {
		if c.ID != exclude && strings.EqualFold(c.Name, trimmed) {
			err := domainerror.NewLedgerError(
				domainerror.KindDuplicate,
				domainerror.ErrCodeCategoryNameExists,
				fmt.Sprintf("a category named %q already exists", c.Name),
				domainerror.ErrDuplicateName,
			)
			err.Field = FieldName
			return err
		}
	}
	return nil
}

func categoryNotFound(id uuid.UUID) error {
	return domainerror.NewLedgerError(
		domainerror.KindNotFound,
		domainerror.ErrCodeCategoryNotFound,
		fmt.Sprintf("category %s not found", id),
		domainerror.ErrCategoryNotFound,
	)
}

func expenseNotFound(id uuid.UUID) error {
	return domainerror.NewLedgerError(
		domainerror.KindNotFound,
		domainerror.ErrCodeExpenseNotFound,
		fmt.Sprintf("expense %s not found", id),
		domainerror.ErrExpenseNotFound,
	)
}

func duplicateID(what string, id uuid.UUID) error {
	return domainerror.NewLedgerError(
		domainerror.KindValidation,
		domainerror.ErrCodeDuplicateID,
		fmt.Sprintf("%s id %s is already in use", what, id),
		domainerror.ErrValidation,
	)
}

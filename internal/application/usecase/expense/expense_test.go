package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// fakeLedger applies mutations synchronously and can fail every commit.
type fakeLedger struct {
	visible   entity.Categories
	commitErr error
	submitted []string
}

func (f *fakeLedger) Submit(_ context.Context, m reconciliation.Mutation) (entity.Categories, error) {
	next, err := m.Apply(f.visible)
	if err != nil {
		return nil, err
	}
	f.submitted = append(f.submitted, m.Name)
	if f.commitErr != nil {
		return nil, f.commitErr
	}
	f.visible = next
	return next, nil
}

func (f *fakeLedger) Visible() entity.Categories {
	return f.visible
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func yesterday() time.Time {
	return entity.CalendarDate(time.Now()).AddDate(0, 0, -1)
}

func newLedger(t *testing.T) (*fakeLedger, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	categories, err := ledger.CreateCategory(nil, ledger.CategoryDraft{ID: id, Name: "Food", PlannedAmount: money("1000")})
	if err != nil {
		t.Fatalf("failed to seed ledger: %v", err)
	}
	return &fakeLedger{visible: categories}, id
}

func TestAddExpenseUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("records the expense and recomputes spend", func(t *testing.T) {
		fake, categoryID := newLedger(t)
		uc := NewAddExpenseUseCase(fake)

		output, err := uc.Execute(ctx, AddExpenseInput{
			CategoryID:  categoryID,
			Amount:      money("850"),
			Description: " weekly shop ",
			Date:        yesterday(),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Expense.Description != "weekly shop" {
			t.Errorf("expected trimmed description, got %q", output.Expense.Description)
		}
		if !output.Category.ActualSpent.Equal(money("850")) {
			t.Errorf("expected actual spent 850, got %s", output.Category.ActualSpent)
		}
		if ledger.Classify(output.Category) != "near_limit" {
			t.Errorf("expected near_limit, got %s", ledger.Classify(output.Category))
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		fake, categoryID := newLedger(t)
		uc := NewAddExpenseUseCase(fake)

		tests := []struct {
			name  string
			input AddExpenseInput
			field string
		}{
			{"zero amount", AddExpenseInput{CategoryID: categoryID, Amount: decimal.Zero, Description: "lunch", Date: yesterday()}, ledger.FieldAmount},
			{"short description", AddExpenseInput{CategoryID: categoryID, Amount: money("1"), Description: "ab", Date: yesterday()}, ledger.FieldDescription},
			{"future date", AddExpenseInput{CategoryID: categoryID, Amount: money("1"), Description: "lunch", Date: yesterday().AddDate(0, 0, 3)}, ledger.FieldDate},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(ctx, tt.input)
				var ledgerErr *domainerror.LedgerError
				if !errors.As(err, &ledgerErr) {
					t.Fatalf("expected ledger error, got %v", err)
				}
				if ledgerErr.Field != tt.field {
					t.Errorf("expected field %s, got %s", tt.field, ledgerErr.Field)
				}
			})
		}
		if len(fake.submitted) != 0 {
			t.Errorf("expected nothing submitted, got %v", fake.submitted)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		fake, _ := newLedger(t)
		_, err := NewAddExpenseUseCase(fake).Execute(ctx, AddExpenseInput{
			CategoryID:  uuid.New(),
			Amount:      money("10"),
			Description: "lunch",
			Date:        yesterday(),
		})
		if !errors.Is(err, domainerror.ErrCategoryNotFound) {
			t.Errorf("expected category not found, got %v", err)
		}
	})

	t.Run("commit failure", func(t *testing.T) {
		fake, categoryID := newLedger(t)
		fake.commitErr = domainerror.NewPersistenceError("add_expense was not saved", errors.New("timeout"))

		_, err := NewAddExpenseUseCase(fake).Execute(ctx, AddExpenseInput{
			CategoryID:  categoryID,
			Amount:      money("10"),
			Description: "lunch",
			Date:        yesterday(),
		})
		if !domainerror.IsKind(err, domainerror.KindPersistence) {
			t.Errorf("expected persistence error, got %v", err)
		}
	})
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	ctx := context.Background()
	fake, categoryID := newLedger(t)

	added, err := NewAddExpenseUseCase(fake).Execute(ctx, AddExpenseInput{
		CategoryID:  categoryID,
		Amount:      money("100"),
		Description: "bus fare",
		Date:        yesterday(),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	expenseID := added.Expense.ID

	newAmount := money("1200")
	updated, err := NewUpdateExpenseUseCase(fake).Execute(ctx, UpdateExpenseInput{ExpenseID: expenseID, Amount: &newAmount})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Expense.Description != "bus fare" {
		t.Errorf("expected description kept, got %q", updated.Expense.Description)
	}
	if !updated.Category.ActualSpent.Equal(newAmount) {
		t.Errorf("expected actual spent %s, got %s", newAmount, updated.Category.ActualSpent)
	}
	if ledger.Classify(updated.Category) != "over_budget" {
		t.Errorf("expected over_budget, got %s", ledger.Classify(updated.Category))
	}

	_, err = NewUpdateExpenseUseCase(fake).Execute(ctx, UpdateExpenseInput{ExpenseID: uuid.New(), Amount: &newAmount})
	if !errors.Is(err, domainerror.ErrExpenseNotFound) {
		t.Errorf("expected expense not found, got %v", err)
	}

	listed, err := NewListExpensesUseCase(fake).Execute(ctx, ListExpensesInput{CategoryID: categoryID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listed.Expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(listed.Expenses))
	}

	deleted, err := NewDeleteExpenseUseCase(fake).Execute(ctx, DeleteExpenseInput{ExpenseID: expenseID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !deleted.Success {
		t.Error("expected success")
	}
	if !fake.Visible()[0].ActualSpent.IsZero() {
		t.Errorf("expected zero spend, got %s", fake.Visible()[0].ActualSpent)
	}
}

func TestListExpensesUseCase_UnknownCategory(t *testing.T) {
	fake, _ := newLedger(t)

	_, err := NewListExpensesUseCase(fake).Execute(context.Background(), ListExpensesInput{CategoryID: uuid.New()})
	if !domainerror.IsKind(err, domainerror.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// AddExpenseInput represents the input for recording an expense.
type AddExpenseInput struct {
	CategoryID  uuid.UUID
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}

// AddExpenseOutput represents the output of recording an expense.
type AddExpenseOutput struct {
	Expense  entity.Expense
	Category entity.Category
}

// AddExpenseUseCase handles expense creation logic.
type AddExpenseUseCase struct {
	ledger reconciliation.Ledger
}

// NewAddExpenseUseCase creates a new AddExpenseUseCase instance.
func NewAddExpenseUseCase(l reconciliation.Ledger) *AddExpenseUseCase {
	return &AddExpenseUseCase{
		ledger: l,
	}
}

// Execute records the expense and waits until it is persisted. The output carries
// the owning category with its recomputed spend.
func (uc *AddExpenseUseCase) Execute(ctx context.Context, input AddExpenseInput) (*AddExpenseOutput, error) {
	m := reconciliation.AddExpense(input.CategoryID, input.Amount, input.Description, input.Date)

	snapshot, err := uc.ledger.Submit(ctx, m)
	if err != nil {
		return nil, err
	}

	return settled(snapshot, m.Subject)
}

func settled(snapshot entity.Categories, expenseID uuid.UUID) (*AddExpenseOutput, error) {
	expense, ok := ledger.FindExpense(snapshot, expenseID)
	if !ok {
		return nil, fmt.Errorf("expense %s missing from snapshot", expenseID)
	}
	category, ok := ledger.FindCategory(snapshot, expense.CategoryID)
	if !ok {
		return nil, fmt.Errorf("category %s missing from snapshot", expense.CategoryID)
	}

	return &AddExpenseOutput{
		Expense:  expense,
		Category: category,
	}, nil
}

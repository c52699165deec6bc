package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
}

// DeleteExpenseOutput represents the output of expense deletion.
type DeleteExpenseOutput struct {
	Success bool
}

// DeleteExpenseUseCase handles expense deletion logic.
type DeleteExpenseUseCase struct {
	ledger reconciliation.Ledger
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(l reconciliation.Ledger) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		ledger: l,
	}
}

// Execute removes the expense.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) (*DeleteExpenseOutput, error) {
	if _, err := uc.ledger.Submit(ctx, reconciliation.DeleteExpense(input.ExpenseID)); err != nil {
		return nil, err
	}

	return &DeleteExpenseOutput{
		Success: true,
	}, nil
}

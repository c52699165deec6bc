package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// UpdateExpenseInput represents the input for expense update.
// Nil fields keep the current value.
type UpdateExpenseInput struct {
	ExpenseID   uuid.UUID
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
}

// UpdateExpenseOutput represents the output of expense update.
type UpdateExpenseOutput struct {
	Expense  entity.Expense
	Category entity.Category
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	ledger reconciliation.Ledger
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(l reconciliation.Ledger) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		ledger: l,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	current, _ := ledger.FindExpense(uc.ledger.Visible(), input.ExpenseID)
	amount, description, date := current.Amount, current.Description, current.Date
	if input.Amount != nil {
		amount = *input.Amount
	}
	if input.Description != nil {
		description = *input.Description
	}
	if input.Date != nil {
		date = *input.Date
	}

	snapshot, err := uc.ledger.Submit(ctx, reconciliation.UpdateExpense(input.ExpenseID, amount, description, date))
	if err != nil {
		return nil, err
	}

	out, err := settled(snapshot, input.ExpenseID)
	if err != nil {
		return nil, err
	}
	return &UpdateExpenseOutput{
		Expense:  out.Expense,
		Category: out.Category,
	}, nil
}

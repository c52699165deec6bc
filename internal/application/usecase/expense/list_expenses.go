// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// ListExpensesInput represents the input for listing the expenses of a category.
type ListExpensesInput struct {
	CategoryID uuid.UUID
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []entity.Expense
}

// ListExpensesUseCase handles listing expenses logic.
type ListExpensesUseCase struct {
	ledger reconciliation.Ledger
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(l reconciliation.Ledger) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		ledger: l,
	}
}

// Execute lists the expenses of one category in insertion order.
func (uc *ListExpensesUseCase) Execute(_ context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	visible := uc.ledger.Visible()
	if visible.IndexOf(input.CategoryID) < 0 {
		return nil, domainerror.NewLedgerError(
			domainerror.KindNotFound,
			domainerror.ErrCodeCategoryNotFound,
			fmt.Sprintf("category %s not found", input.CategoryID),
			domainerror.ErrCategoryNotFound,
		)
	}

	return &ListExpensesOutput{
		Expenses: ledger.ExpensesByCategory(visible, input.CategoryID),
	}, nil
}

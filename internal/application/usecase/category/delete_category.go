package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	ledger reconciliation.Ledger
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(l reconciliation.Ledger) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		ledger: l,
	}
}

// Execute deletes the category together with its expenses.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if _, err := uc.ledger.Submit(ctx, reconciliation.DeleteCategory(input.CategoryID)); err != nil {
		return nil, err
	}

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}

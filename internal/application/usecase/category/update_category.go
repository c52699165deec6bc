package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// UpdateCategoryInput represents the input for category update.
// A nil Name or PlannedAmount keeps the current value.
type UpdateCategoryInput struct {
	CategoryID    uuid.UUID
	Name          *string
	PlannedAmount *decimal.Decimal
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category entity.Category
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	ledger reconciliation.Ledger
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(l reconciliation.Ledger) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		ledger: l,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	name, planned := "", decimal.Zero
	if current, ok := ledger.FindCategory(uc.ledger.Visible(), input.CategoryID); ok {
		name, planned = current.Name, current.PlannedAmount
	}
	if input.Name != nil {
		name = *input.Name
	}
	if input.PlannedAmount != nil {
		planned = *input.PlannedAmount
	}

	snapshot, err := uc.ledger.Submit(ctx, reconciliation.UpdateCategory(input.CategoryID, name, planned))
	if err != nil {
		return nil, err
	}

	category, ok := ledger.FindCategory(snapshot, input.CategoryID)
	if !ok {
		return nil, fmt.Errorf("updated category %s missing from snapshot", input.CategoryID)
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}

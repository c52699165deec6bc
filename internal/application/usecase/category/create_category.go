package category

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name          string
	PlannedAmount decimal.Decimal
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	ledger reconciliation.Ledger
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(l reconciliation.Ledger) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		ledger: l,
	}
}

// Execute creates the category and waits until it is persisted.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	m := reconciliation.CreateCategory(input.Name, input.PlannedAmount)

	snapshot, err := uc.ledger.Submit(ctx, m)
	if err != nil {
		return nil, err
	}

	category, ok := ledger.FindCategory(snapshot, m.Subject)
	if !ok {
		return nil, fmt.Errorf("created category %s missing from snapshot", m.Subject)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

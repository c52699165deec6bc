// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/budget-ledger/backend/internal/application/usecase/reconciliation"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct{}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []ledger.CategorySummary
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	ledger reconciliation.Ledger
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(l reconciliation.Ledger) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		ledger: l,
	}
}

// Execute lists the visible categories in creation order.
func (uc *ListCategoriesUseCase) Execute(_ context.Context, _ ListCategoriesInput) (*ListCategoriesOutput, error) {
	visible := uc.ledger.Visible()

	categories := make([]ledger.CategorySummary, 0, len(visible))
	for _, c := range visible {
		categories = append(categories, ledger.SummarizeCategory(c))
	}

	return &ListCategoriesOutput{
		Categories: categories,
	}, nil
}

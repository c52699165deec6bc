package income

import (
	"context"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// GetIncomeInput represents the input for loading the current income.
type GetIncomeInput struct{}

// GetIncomeOutput represents the output of loading the current income.
// Breakdown is nil when no income was saved yet.
type GetIncomeOutput struct {
	Breakdown *entity.PayBreakdown
}

// GetIncomeUseCase loads the current income.
type GetIncomeUseCase struct {
	store adapter.BudgetStore
}

// NewGetIncomeUseCase creates a new GetIncomeUseCase instance.
func NewGetIncomeUseCase(store adapter.BudgetStore) *GetIncomeUseCase {
	return &GetIncomeUseCase{
		store: store,
	}
}

// Execute loads the current income.
func (uc *GetIncomeUseCase) Execute(ctx context.Context, _ GetIncomeInput) (*GetIncomeOutput, error) {
	breakdown, err := uc.store.LoadIncome(ctx)
	if err != nil {
		if domainerror.KindOf(err) == "" {
			err = domainerror.NewPersistenceError("failed to load income", err)
		}
		return nil, err
	}

	return &GetIncomeOutput{
		Breakdown: breakdown,
	}, nil
}

package income

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/domain/tax"
)

// SaveIncomeInput represents the input for saving the monthly income.
type SaveIncomeInput struct {
	GrossPay decimal.Decimal
}

// SaveIncomeOutput represents the output of saving the monthly income.
type SaveIncomeOutput struct {
	Breakdown entity.PayBreakdown
}

// SaveIncomeUseCase computes a pay breakdown and stores it as the current income.
type SaveIncomeUseCase struct {
	store      adapter.BudgetStore
	calculator *tax.Calculator
}

// NewSaveIncomeUseCase creates a new SaveIncomeUseCase instance.
func NewSaveIncomeUseCase(store adapter.BudgetStore, calculator *tax.Calculator) *SaveIncomeUseCase {
	return &SaveIncomeUseCase{
		store:      store,
		calculator: calculator,
	}
}

// Execute performs the save.
func (uc *SaveIncomeUseCase) Execute(ctx context.Context, input SaveIncomeInput) (*SaveIncomeOutput, error) {
	breakdown, err := uc.calculator.NetPay(input.GrossPay)
	if err != nil {
		return nil, err
	}

	saved, err := uc.store.SaveIncome(ctx, breakdown)
	if err != nil {
		if domainerror.KindOf(err) == "" {
			err = domainerror.NewPersistenceError("failed to save income", err)
		}
		return nil, err
	}

	slog.Info("Income saved",
		"gross_pay", saved.GrossPay.StringFixed(2),
		"net_pay", saved.NetPay.StringFixed(2),
	)

	return &SaveIncomeOutput{
		Breakdown: *saved,
	}, nil
}

// Package income contains income-related use cases.
package income

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/tax"
)

// ComputeNetPayInput represents the input for a pay breakdown preview.
type ComputeNetPayInput struct {
	GrossPay decimal.Decimal
}

// ComputeNetPayOutput represents the output of a pay breakdown preview.
type ComputeNetPayOutput struct {
	Breakdown entity.PayBreakdown
}

// ComputeNetPayUseCase computes a pay breakdown without persisting it.
type ComputeNetPayUseCase struct {
	calculator *tax.Calculator
}

// NewComputeNetPayUseCase creates a new ComputeNetPayUseCase instance.
func NewComputeNetPayUseCase(calculator *tax.Calculator) *ComputeNetPayUseCase {
	return &ComputeNetPayUseCase{
		calculator: calculator,
	}
}

// Execute computes the statutory deductions for the gross pay.
func (uc *ComputeNetPayUseCase) Execute(_ context.Context, input ComputeNetPayInput) (*ComputeNetPayOutput, error) {
	breakdown, err := uc.calculator.NetPay(input.GrossPay)
	if err != nil {
		return nil, err
	}

	return &ComputeNetPayOutput{
		Breakdown: breakdown,
	}, nil
}

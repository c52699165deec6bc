package income

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/application/adapter"
	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/domain/tax"
)

// memoryStore keeps only the income part of a budget store.
type memoryStore struct {
	adapter.BudgetStore
	income *entity.PayBreakdown
	err    error
}

func (s *memoryStore) LoadIncome(context.Context) (*entity.PayBreakdown, error) {
	return s.income, s.err
}

func (s *memoryStore) SaveIncome(_ context.Context, breakdown entity.PayBreakdown) (*entity.PayBreakdown, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.income = &breakdown
	return &breakdown, nil
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestComputeNetPayUseCase(t *testing.T) {
	uc := NewComputeNetPayUseCase(tax.NewCalculator(tax.DefaultSchedule()))

	output, err := uc.Execute(context.Background(), ComputeNetPayInput{GrossPay: money("40000")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !output.Breakdown.NetPay.Equal(money("33916.65")) {
		t.Errorf("expected net pay 33916.65, got %s", output.Breakdown.NetPay)
	}

	_, err = uc.Execute(context.Background(), ComputeNetPayInput{GrossPay: money("-1")})
	if !domainerror.IsKind(err, domainerror.KindInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestSaveAndGetIncome(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	calculator := tax.NewCalculator(tax.DefaultSchedule())

	got, err := NewGetIncomeUseCase(store).Execute(ctx, GetIncomeInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Breakdown != nil {
		t.Errorf("expected no income, got %+v", got.Breakdown)
	}

	saved, err := NewSaveIncomeUseCase(store, calculator).Execute(ctx, SaveIncomeInput{GrossPay: money("24000")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !saved.Breakdown.PAYEE.IsZero() {
		t.Errorf("expected zero PAYEE at 24000, got %s", saved.Breakdown.PAYEE)
	}

	got, err = NewGetIncomeUseCase(store).Execute(ctx, GetIncomeInput{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Breakdown == nil || !got.Breakdown.NetPay.Equal(saved.Breakdown.NetPay) {
		t.Errorf("expected stored net pay %s, got %+v", saved.Breakdown.NetPay, got.Breakdown)
	}
}

func TestSaveIncomeUseCase_Errors(t *testing.T) {
	ctx := context.Background()
	calculator := tax.NewCalculator(tax.DefaultSchedule())

	t.Run("invalid gross pay is not stored", func(t *testing.T) {
		store := &memoryStore{}
		_, err := NewSaveIncomeUseCase(store, calculator).Execute(ctx, SaveIncomeInput{GrossPay: money("-5")})
		if !domainerror.IsKind(err, domainerror.KindInvalidInput) {
			t.Errorf("expected invalid input, got %v", err)
		}
		if store.income != nil {
			t.Error("expected nothing stored")
		}
	})

	t.Run("store failure becomes persistence error", func(t *testing.T) {
		store := &memoryStore{err: errors.New("read-only file system")}
		_, err := NewSaveIncomeUseCase(store, calculator).Execute(ctx, SaveIncomeInput{GrossPay: money("1000")})
		if !domainerror.IsKind(err, domainerror.KindPersistence) {
			t.Errorf("expected persistence error, got %v", err)
		}

		_, err = NewGetIncomeUseCase(store).Execute(ctx, GetIncomeInput{})
		if !errors.Is(err, domainerror.ErrPersistence) {
			t.Errorf("expected persistence error, got %v", err)
		}
	})
}

// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// GetSummaryInput represents the input for the budget summary.
type GetSummaryInput struct{}

// GetSummaryOutput represents the budget summary.
type GetSummaryOutput struct {
	Income  *entity.PayBreakdown
	Summary ledger.Summary
}

// GetSummaryUseCase combines the current income with the ledger's categories.
type GetSummaryUseCase struct {
	income     IncomeSource
	categories CategorySource
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(income IncomeSource, categories CategorySource) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		income:     income,
		categories: categories,
	}
}

// Execute loads the income and the categories concurrently and aggregates them.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, _ GetSummaryInput) (*GetSummaryOutput, error) {
	var (
		income     *entity.PayBreakdown
		categories entity.Categories
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := uc.income.LoadIncome(gctx)
		if err != nil {
			return asPersistence("failed to load income", err)
		}
		income = loaded
		return nil
	})
	g.Go(func() error {
		loaded, err := uc.categories.LoadCategories(gctx)
		if err != nil {
			return asPersistence("failed to load categories", err)
		}
		categories = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GetSummaryOutput{
		Income:  income,
		Summary: ledger.Summarize(categories, income),
	}, nil
}

func asPersistence(message string, err error) error {
	if domainerror.KindOf(err) == "" {
		return domainerror.NewPersistenceError(message, err)
	}
	return err
}

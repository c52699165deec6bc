package dto

import (
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name          string           `json:"name"`
	PlannedAmount *decimal.Decimal `json:"planned_amount" binding:"required"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name          *string          `json:"name,omitempty"`
	PlannedAmount *decimal.Decimal `json:"planned_amount,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PlannedAmount string `json:"planned_amount"`
	ActualSpent   string `json:"actual_spent"`
	Remaining     string `json:"remaining"`
	SpendingRatio string `json:"spending_ratio"`
	ExpenseCount  int    `json:"expense_count"`
	Status        string `json:"status"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a category summary to a CategoryResponse DTO.
func ToCategoryResponse(s ledger.CategorySummary) CategoryResponse {
	return CategoryResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		PlannedAmount: money(s.PlannedAmount),
		ActualSpent:   money(s.ActualSpent),
		Remaining:     money(s.Remaining),
		SpendingRatio: s.SpendingRatio.StringFixed(4),
		ExpenseCount:  s.ExpenseCount,
		Status:        string(s.Status),
	}
}

// ToCategoryEntityResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryEntityResponse(c entity.Category) CategoryResponse {
	return ToCategoryResponse(ledger.SummarizeCategory(c))
}

// ToCategoryListResponse converts category summaries to a CategoryListResponse.
func ToCategoryListResponse(summaries []ledger.CategorySummary) CategoryListResponse {
	categories := make([]CategoryResponse, len(summaries))
	for i, s := range summaries {
		categories[i] = ToCategoryResponse(s)
	}
	return CategoryListResponse{Categories: categories}
}

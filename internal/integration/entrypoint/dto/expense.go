package dto

import (
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for recording an expense.
// An empty date means today.
type CreateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Description string           `json:"description"`
	Date        string           `json:"date,omitempty"`
}

// UpdateExpenseRequest represents the request body for expense update.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string `json:"id"`
	CategoryID  string `json:"category_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ExpenseMutationResponse carries the changed expense and its owning category.
type ExpenseMutationResponse struct {
	Expense  ExpenseResponse  `json:"expense"`
	Category CategoryResponse `json:"category"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		CategoryID:  e.CategoryID.String(),
		Amount:      money(e.Amount),
		Description: e.Description,
		Date:        e.Date.Format(entity.DateLayout),
	}
}

// ToExpenseListResponse converts expenses to an ExpenseListResponse.
func ToExpenseListResponse(expenses []entity.Expense) ExpenseListResponse {
	out := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{Expenses: out}
}

// ToExpenseMutationResponse converts an expense and its category.
func ToExpenseMutationResponse(e entity.Expense, c entity.Category) ExpenseMutationResponse {
	return ExpenseMutationResponse{
		Expense:  ToExpenseResponse(e),
		Category: ToCategoryEntityResponse(c),
	}
}

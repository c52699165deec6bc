package dto

import (
	"github.com/budget-ledger/backend/internal/application/usecase/dashboard"
)

// SummaryResponse represents the budget summary.
type SummaryResponse struct {
	Income          *PayBreakdownResponse `json:"income"`
	NetPay          string                `json:"net_pay"`
	TotalAllocated  string                `json:"total_allocated"`
	TotalSpent      string                `json:"total_spent"`
	RemainingBudget string                `json:"remaining_budget"`
	OverBudgetCount int                   `json:"over_budget_count"`
	NearLimitCount  int                   `json:"near_limit_count"`
	Categories      []CategoryResponse    `json:"categories"`
}

// ToSummaryResponse converts a GetSummaryOutput to a SummaryResponse DTO.
func ToSummaryResponse(output *dashboard.GetSummaryOutput) SummaryResponse {
	s := output.Summary
	return SummaryResponse{
		Income:          ToIncomeResponse(output.Income).Income,
		NetPay:          money(s.NetPay),
		TotalAllocated:  money(s.TotalAllocated),
		TotalSpent:      money(s.TotalSpent),
		RemainingBudget: money(s.RemainingBudget),
		OverBudgetCount: s.OverBudgetCount,
		NearLimitCount:  s.NearLimitCount,
		Categories:      ToCategoryListResponse(s.Categories).Categories,
	}
}

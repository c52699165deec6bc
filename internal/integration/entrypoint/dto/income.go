package dto

import (
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
)

// SaveIncomeRequest represents the request body for saving the monthly income.
// The gross pay may be sent as a JSON number or a decimal string.
type SaveIncomeRequest struct {
	GrossPay *decimal.Decimal `json:"gross_pay" binding:"required"`
}

// PayBreakdownResponse represents a pay breakdown in API responses.
type PayBreakdownResponse struct {
	GrossPay        string `json:"gross_pay"`
	SHA             string `json:"sha"`
	PAYEE           string `json:"payee"`
	HousingLevy     string `json:"housing_levy"`
	TotalDeductions string `json:"total_deductions"`
	NetPay          string `json:"net_pay"`
}

// IncomeResponse represents the current income. Income is null when none was saved.
type IncomeResponse struct {
	Income *PayBreakdownResponse `json:"income"`
}

// ToPayBreakdownResponse converts a domain PayBreakdown to a PayBreakdownResponse DTO.
func ToPayBreakdownResponse(b entity.PayBreakdown) PayBreakdownResponse {
	return PayBreakdownResponse{
		GrossPay:        money(b.GrossPay),
		SHA:             money(b.SHA),
		PAYEE:           money(b.PAYEE),
		HousingLevy:     money(b.HousingLevy),
		TotalDeductions: money(b.TotalDeductions),
		NetPay:          money(b.NetPay),
	}
}

// ToIncomeResponse converts an optional PayBreakdown to an IncomeResponse DTO.
func ToIncomeResponse(b *entity.PayBreakdown) IncomeResponse {
	if b == nil {
		return IncomeResponse{}
	}
	breakdown := ToPayBreakdownResponse(*b)
	return IncomeResponse{Income: &breakdown}
}

// money formats an amount with exactly two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

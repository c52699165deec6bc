package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/valueobject"
)

// nearLimitRatio is the spending ratio from which a category is near its limit.
var nearLimitRatio = decimal.RequireFromString("0.8")

// TotalAllocated sums the planned amounts of all categories.
func TotalAllocated(categories entity.Categories) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.PlannedAmount)
	}
	return total
}

// TotalSpent sums the actual spend of all categories.
func TotalSpent(categories entity.Categories) decimal.Decimal {
	total := decimal.Zero
	for _, c := range categories {
		total = total.Add(c.ActualSpent)
	}
	return total
}

// RemainingBudget is net pay less everything allocated. A negative result means
// the plan allocates more than the income.
func RemainingBudget(categories entity.Categories, netPay decimal.Decimal) decimal.Decimal {
	return netPay.Sub(TotalAllocated(categories))
}

// SpendingRatio is ActualSpent / PlannedAmount. A category with nothing planned
// has a ratio of zero.
func SpendingRatio(category entity.Category) decimal.Decimal {
	if category.PlannedAmount.IsZero() {
		return decimal.Zero
	}
	return category.ActualSpent.Div(category.PlannedAmount)
}

// Classify returns the budget status of a category. With nothing planned, any
// spend is over budget.
func Classify(category entity.Category) valueobject.BudgetStatus {
	if category.PlannedAmount.IsZero() {
		if category.ActualSpent.IsPositive() {
			return valueobject.BudgetStatusOverBudget
		}
		return valueobject.BudgetStatusOnTrack
	}
	if category.ActualSpent.GreaterThan(category.PlannedAmount) {
		return valueobject.BudgetStatusOverBudget
	}
	if SpendingRatio(category).GreaterThanOrEqual(nearLimitRatio) {
		return valueobject.BudgetStatusNearLimit
	}
	return valueobject.BudgetStatusOnTrack
}

// CategorySummary is the read-side view of one category.
type CategorySummary struct {
	ID            uuid.UUID
	Name          string
	PlannedAmount decimal.Decimal
	ActualSpent   decimal.Decimal
	Remaining     decimal.Decimal
	SpendingRatio decimal.Decimal
	ExpenseCount  int
	Status        valueobject.BudgetStatus
}

// Summary is the read-side view of the whole budget.
type Summary struct {
	HasIncome       bool
	NetPay          decimal.Decimal
	TotalAllocated  decimal.Decimal
	TotalSpent      decimal.Decimal
	RemainingBudget decimal.Decimal
	OverBudgetCount int
	NearLimitCount  int
	Categories      []CategorySummary
}

// Summarize computes every aggregate for a snapshot. Without an income record the
// net pay is treated as zero.
func Summarize(categories entity.Categories, income *entity.PayBreakdown) Summary {
	netPay := decimal.Zero
	if income != nil {
		netPay = income.NetPay
	}

	summary := Summary{
		HasIncome:       income != nil,
		NetPay:          netPay,
		TotalAllocated:  TotalAllocated(categories),
		TotalSpent:      TotalSpent(categories),
		RemainingBudget: RemainingBudget(categories, netPay),
		Categories:      make([]CategorySummary, 0, len(categories)),
	}

	for _, c := range categories {
		item := SummarizeCategory(c)
		switch item.Status {
		case valueobject.BudgetStatusOverBudget:
			summary.OverBudgetCount++
		case valueobject.BudgetStatusNearLimit:
			summary.NearLimitCount++
		}
		summary.Categories = append(summary.Categories, item)
	}

	return summary
}

// SummarizeCategory computes the read-side view of one category.
func SummarizeCategory(c entity.Category) CategorySummary {
	return CategorySummary{
		ID:            c.ID,
		Name:          c.Name,
		PlannedAmount: c.PlannedAmount,
		ActualSpent:   c.ActualSpent,
		Remaining:     c.PlannedAmount.Sub(c.ActualSpent),
		SpendingRatio: SpendingRatio(c),
		ExpenseCount:  len(c.Expenses),
		Status:        Classify(c),
	}
}

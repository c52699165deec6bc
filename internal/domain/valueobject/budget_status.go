// Package valueobject contains domain value objects for the budget ledger.
package valueobject

// BudgetStatus classifies how a category's spending compares with its plan.
type BudgetStatus string

const (
	BudgetStatusOnTrack    BudgetStatus = "on_track"
	BudgetStatusNearLimit  BudgetStatus = "near_limit"
	BudgetStatusOverBudget BudgetStatus = "over_budget"
)

// IsOverBudget reports whether the status is over budget.
func (s BudgetStatus) IsOverBudget() bool {
	return s == BudgetStatusOverBudget
}

// IsNearLimit reports whether the status is near the limit.
func (s BudgetStatus) IsNearLimit() bool {
	return s == BudgetStatusNearLimit
}

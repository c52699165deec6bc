// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayBreakdown is the statutory deduction breakdown of a gross salary.
// It is produced fresh for every gross pay and never mutated.
type PayBreakdown struct {
	GrossPay        decimal.Decimal `json:"gross_pay"`
	SHA             decimal.Decimal `json:"sha"`
	PAYEE           decimal.Decimal `json:"payee"`
	HousingLevy     decimal.Decimal `json:"housing_levy"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

// IncomeRecord is a persisted pay breakdown. Exactly one record is current at a time.
type IncomeRecord struct {
	ID        uuid.UUID
	Breakdown PayBreakdown
	IsCurrent bool
	CreatedAt time.Time
}

// NewIncomeRecord creates a new current IncomeRecord for the breakdown.
func NewIncomeRecord(breakdown PayBreakdown) *IncomeRecord {
	return &IncomeRecord{
		ID:        uuid.New(),
		Breakdown: breakdown,
		IsCurrent: true,
		CreatedAt: time.Now().UTC(),
	}
}

// Snapshot is the persisted shape of the whole budget: the current income and every
// category with its expenses embedded.
type Snapshot struct {
	Income     *PayBreakdown `json:"income"`
	Categories Categories    `json:"categories"`
}

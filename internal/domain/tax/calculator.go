// Package tax converts a gross salary into its statutory deduction breakdown.
package tax

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

// centPlaces is the rounding precision applied at every stage of the computation.
const centPlaces = 2

// Calculator computes deductions for a fixed Schedule. It holds no mutable state.
type Calculator struct {
	schedule Schedule
}

// NewCalculator creates a Calculator for the given schedule.
func NewCalculator(schedule Schedule) *Calculator {
	return &Calculator{schedule: schedule}
}

var defaultCalculator = NewCalculator(DefaultSchedule())

// ComputeShaDeduction returns the SHA deduction for gross pay using the default schedule.
func ComputeShaDeduction(grossPay decimal.Decimal) (decimal.Decimal, error) {
	return defaultCalculator.ShaDeduction(grossPay)
}

// ComputeHousingLevy returns the housing levy for gross pay using the default schedule.
func ComputeHousingLevy(grossPay decimal.Decimal) (decimal.Decimal, error) {
	return defaultCalculator.HousingLevy(grossPay)
}

// ComputePayeeTax returns the PAYEE tax for gross pay using the default schedule.
func ComputePayeeTax(grossPay decimal.Decimal) (decimal.Decimal, error) {
	return defaultCalculator.PayeeTax(grossPay)
}

// ComputeNetPay returns the full breakdown for gross pay using the default schedule.
func ComputeNetPay(grossPay decimal.Decimal) (entity.PayBreakdown, error) {
	return defaultCalculator.NetPay(grossPay)
}

// ShaDeduction returns round2(grossPay * SHA rate).
func (c *Calculator) ShaDeduction(grossPay decimal.Decimal) (decimal.Decimal, error) {
	if err := validateGrossPay(grossPay); err != nil {
		return decimal.Zero, err
	}
	return round2(grossPay.Mul(c.schedule.SHARate)), nil
}

// HousingLevy returns round2(grossPay * housing levy rate).
func (c *Calculator) HousingLevy(grossPay decimal.Decimal) (decimal.Decimal, error) {
	if err := validateGrossPay(grossPay); err != nil {
		return decimal.Zero, err
	}
	return round2(grossPay.Mul(c.schedule.HousingLevyRate)), nil
}

// PayeeTax sums the bracket contributions up to grossPay, subtracts the personal
// relief and floors the result at zero. A bracket's upper bound belongs to that
// bracket, so income exactly on a boundary is taxed at the lower rate.
func (c *Calculator) PayeeTax(grossPay decimal.Decimal) (decimal.Decimal, error) {
	if err := validateGrossPay(grossPay); err != nil {
		return decimal.Zero, err
	}

	raw := decimal.Zero
	lower := decimal.Zero
	for _, b := range c.schedule.Brackets {
		if grossPay.LessThanOrEqual(lower) {
			break
		}
		upper := grossPay
		if !b.Unbounded && b.UpperBound.LessThan(grossPay) {
			upper = b.UpperBound
		}
		raw = raw.Add(upper.Sub(lower).Mul(b.Rate))
		if b.Unbounded {
			break
		}
		lower = b.UpperBound
	}

	payee := round2(raw.Sub(c.schedule.PersonalRelief))
	if payee.IsNegative() {
		return decimal.Zero, nil
	}
	return payee, nil
}

// NetPay computes every deduction and the resulting net pay. Each stage is rounded
// to the cent before it feeds the next one.
func (c *Calculator) NetPay(grossPay decimal.Decimal) (entity.PayBreakdown, error) {
	sha, err := c.ShaDeduction(grossPay)
	if err != nil {
		return entity.PayBreakdown{}, err
	}
	payee, err := c.PayeeTax(grossPay)
	if err != nil {
		return entity.PayBreakdown{}, err
	}
	levy, err := c.HousingLevy(grossPay)
	if err != nil {
		return entity.PayBreakdown{}, err
	}

	total := round2(sha.Add(payee).Add(levy))

	return entity.PayBreakdown{
		GrossPay:        grossPay,
		SHA:             sha,
		PAYEE:           payee,
		HousingLevy:     levy,
		TotalDeductions: total,
		NetPay:          round2(grossPay.Sub(total)),
	}, nil
}

// GrossPayFromFloat converts a float gross pay, rejecting NaN, infinities and negatives.
func GrossPayFromFloat(value float64) (decimal.Decimal, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, invalidGrossPay("gross pay must be a finite number", nil)
	}
	grossPay := decimal.NewFromFloat(value)
	if err := validateGrossPay(grossPay); err != nil {
		return decimal.Zero, err
	}
	return grossPay, nil
}

// ParseGrossPay parses a textual gross pay, rejecting non-numeric and negative values.
func ParseGrossPay(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, invalidGrossPay("gross pay is required", nil)
	}
	grossPay, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, invalidGrossPay(fmt.Sprintf("gross pay %q is not a number", trimmed), err)
	}
	if err := validateGrossPay(grossPay); err != nil {
		return decimal.Zero, err
	}
	return grossPay, nil
}

func validateGrossPay(grossPay decimal.Decimal) error {
	if grossPay.IsNegative() {
		return invalidGrossPay("gross pay must not be negative", nil)
	}
	if !entity.WholeCents(grossPay) {
		return invalidGrossPay("gross pay must not have more than two decimal places", nil)
	}
	return nil
}

func invalidGrossPay(message string, cause error) error {
	err := domainerror.NewLedgerError(
		domainerror.KindInvalidInput,
		domainerror.ErrCodeInvalidGrossPay,
		message,
		domainerror.ErrInvalidInput,
	)
	err.Field = "gross_pay"
	if cause != nil {
		err.Err = fmt.Errorf("%w: %v", domainerror.ErrInvalidInput, cause)
	}
	return err
}

// round2 rounds half away from zero at the cent, which is round-half-up for the
// non-negative amounts handled here.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(centPlaces)
}

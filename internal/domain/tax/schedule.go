// Package tax converts a gross salary into its statutory deduction breakdown.
package tax

import "github.com/shopspring/decimal"

// Bracket is one band of the progressive PAYEE schedule. The band covers
// (previous UpperBound, UpperBound]; an unbounded band has no upper limit.
type Bracket struct {
	UpperBound decimal.Decimal
	Unbounded  bool
	Rate       decimal.Decimal
}

// Schedule holds the statutory rates used by a Calculator.
type Schedule struct {
	SHARate         decimal.Decimal
	HousingLevyRate decimal.Decimal
	Brackets        []Bracket
	PersonalRelief  decimal.Decimal
}

// DefaultSchedule returns the monthly schedule: SHA 2.75%, housing levy 1.5%,
// PAYEE 10% up to 24,000, 25% up to 32,333, 30% above, less 2,400 relief.
func DefaultSchedule() Schedule {
	return Schedule{
		SHARate:         decimal.RequireFromString("0.0275"),
		HousingLevyRate: decimal.RequireFromString("0.015"),
		Brackets: []Bracket{
			{UpperBound: decimal.NewFromInt(24000), Rate: decimal.RequireFromString("0.10")},
			{UpperBound: decimal.NewFromInt(32333), Rate: decimal.RequireFromString("0.25")},
			{Unbounded: true, Rate: decimal.RequireFromString("0.30")},
		},
		PersonalRelief: decimal.NewFromInt(2400),
	}
}

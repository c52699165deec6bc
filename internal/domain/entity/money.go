package entity

import "github.com/shopspring/decimal"

// CentPlaces is the precision of every currency amount in the ledger.
const CentPlaces = 2

// WholeCents reports whether amount carries no precision below the cent.
// Trailing zeros are fine: 10.500 is whole cents.
func WholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(CentPlaces))
}

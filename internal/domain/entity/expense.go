// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format used for expense dates.
const DateLayout = "2006-01-02"

// Expense represents a single spend recorded against exactly one category.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// NewExpense creates a new Expense entity.
// A nil id is replaced with a freshly generated one; the date is truncated to a calendar day.
func NewExpense(id, categoryID uuid.UUID, amount decimal.Decimal, description string, date time.Time) Expense {
	if id == uuid.Nil {
		id = uuid.New()
	}

	return Expense{
		ID:          id,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Date:        CalendarDate(date),
	}
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDate(t), nil
}

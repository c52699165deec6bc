package ledger

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/budget-ledger/backend/internal/domain/entity"
	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/domain/valueobject"
)

const (
	// MinCategoryNameLength is the minimum length of a trimmed category name.
	MinCategoryNameLength = 2
	// MaxCategoryNameLength is the maximum length of a trimmed category name.
	MaxCategoryNameLength = 50
	// MinDescriptionLength is the minimum length of a trimmed expense description.
	MinDescriptionLength = 3
	// MaxDescriptionLength is the maximum length of a trimmed expense description.
	MaxDescriptionLength = 100
	// MaxExpenseAgeYears bounds how far in the past an expense date may be.
	MaxExpenseAgeYears = 2

	forbiddenNameChars = `<>"'&`
)

// Field names reported by validation failures.
const (
	FieldName          = "name"
	FieldPlannedAmount = "planned_amount"
	FieldAmount        = "amount"
	FieldDescription   = "description"
	FieldDate          = "date"
)

// now is the clock used for expense date plausibility checks.
var now = time.Now

// ValidateCategoryName checks a category name after trimming.
func ValidateCategoryName(name string) valueobject.ValidationResult {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return valueobject.Invalid(FieldName, "category name is required")
	}
	length := utf8.RuneCountInString(trimmed)
	if length < MinCategoryNameLength || length > MaxCategoryNameLength {
		return valueobject.Invalid(FieldName, fmt.Sprintf(
			"category name must be between %d and %d characters", MinCategoryNameLength, MaxCategoryNameLength))
	}
	if strings.ContainsAny(trimmed, forbiddenNameChars) {
		return valueobject.Invalid(FieldName, `category name must not contain < > " ' or &`)
	}
	return valueobject.Ok()
}

// ValidatePlannedAmount checks that a planned amount is not negative.
func ValidatePlannedAmount(amount decimal.Decimal) valueobject.ValidationResult {
	if amount.IsNegative() {
		return valueobject.Invalid(FieldPlannedAmount, "planned amount must not be negative")
	}
	if !entity.WholeCents(amount) {
		return valueobject.Invalid(FieldPlannedAmount, "planned amount must not have more than two decimal places")
	}
	return valueobject.Ok()
}

// ValidateExpenseAmount checks that an expense amount is strictly positive.
func ValidateExpenseAmount(amount decimal.Decimal) valueobject.ValidationResult {
	if !amount.IsPositive() {
		return valueobject.Invalid(FieldAmount, "amount must be greater than zero")
	}
	if !entity.WholeCents(amount) {
		return valueobject.Invalid(FieldAmount, "amount must not have more than two decimal places")
	}
	return valueobject.Ok()
}

// ValidateExpenseDescription checks a description after trimming.
func ValidateExpenseDescription(description string) valueobject.ValidationResult {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return valueobject.Invalid(FieldDescription, "description is required")
	}
	length := utf8.RuneCountInString(trimmed)
	if length < MinDescriptionLength || length > MaxDescriptionLength {
		return valueobject.Invalid(FieldDescription, fmt.Sprintf(
			"description must be between %d and %d characters", MinDescriptionLength, MaxDescriptionLength))
	}
	return valueobject.Ok()
}

// ValidateExpenseDate checks that date is a plausible spend date relative to today:
// not in the future and not older than MaxExpenseAgeYears.
func ValidateExpenseDate(date, today time.Time) valueobject.ValidationResult {
	if date.IsZero() {
		return valueobject.Invalid(FieldDate, "date is required")
	}
	day := entity.CalendarDate(date)
	today = entity.CalendarDate(today)
	if day.After(today) {
		return valueobject.Invalid(FieldDate, "date cannot be in the future")
	}
	if day.Before(today.AddDate(-MaxExpenseAgeYears, 0, 0)) {
		return valueobject.Invalid(FieldDate, fmt.Sprintf("date cannot be more than %d years ago", MaxExpenseAgeYears))
	}
	return valueobject.Ok()
}

func validateCategory(name string, planned decimal.Decimal) error {
	return toError(valueobject.FirstInvalid(
		ValidateCategoryName(name),
		ValidatePlannedAmount(planned),
	))
}

func validateExpense(amount decimal.Decimal, description string, date time.Time) error {
	return toError(valueobject.FirstInvalid(
		ValidateExpenseAmount(amount),
		ValidateExpenseDescription(description),
		ValidateExpenseDate(date, now()),
	))
}

// validateExpenseUpdate checks the date only when it moves to another day, so an
// expense that has aged past MaxExpenseAgeYears can still be corrected.
func validateExpenseUpdate(amount decimal.Decimal, description string, date, stored time.Time) error {
	dateResult := valueobject.Ok()
	if date.IsZero() || !entity.CalendarDate(date).Equal(entity.CalendarDate(stored)) {
		dateResult = ValidateExpenseDate(date, now())
	}
	return toError(valueobject.FirstInvalid(
		ValidateExpenseAmount(amount),
		ValidateExpenseDescription(description),
		dateResult,
	))
}

var fieldCodes = map[string]domainerror.LedgerErrorCode{
	FieldName:          domainerror.ErrCodeInvalidCategoryName,
	FieldPlannedAmount: domainerror.ErrCodeInvalidPlannedAmount,
	FieldAmount:        domainerror.ErrCodeInvalidExpenseAmount,
	FieldDescription:   domainerror.ErrCodeInvalidDescription,
	FieldDate:          domainerror.ErrCodeInvalidExpenseDate,
}

// toError converts a failed validation result to a field-attributed ValidationError.
func toError(result valueobject.ValidationResult) error {
	if result.IsOk() {
		return nil
	}
	code, ok := fieldCodes[result.Field]
	if !ok {
		code = domainerror.ErrCodeMissingFields
	}
	return domainerror.NewValidationError(code, result.Field, result.Message)
}

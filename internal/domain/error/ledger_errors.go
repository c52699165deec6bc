// Package error defines domain-specific errors for the budget ledger.
package error

import "errors"

// Kind classifies a ledger error by how the caller can recover from it.
type Kind string

const (
	KindValidation   Kind = "validation_error"
	KindDuplicate    Kind = "duplicate_name"
	KindNotFound     Kind = "not_found"
	KindPersistence  Kind = "persistence_error"
	KindInvalidInput Kind = "invalid_input"
)

// Ledger domain errors.
var (
	// ErrValidation is returned when caller-supplied input has a bad shape or range.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateName is returned when a category name is already taken (case-insensitive).
	ErrDuplicateName = errors.New("category name already exists")

	// ErrCategoryNotFound is returned when a referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrExpenseNotFound is returned when a referenced expense does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrPersistence is returned when a durable write or read failed.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvalidInput is returned when the tax calculator is given an unusable gross pay.
	ErrInvalidInput = errors.New("invalid gross pay")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LED-XXYYYY where XX is the group and YYYY is the specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategoryName  LedgerErrorCode = "LED-010001"
	ErrCodeInvalidPlannedAmount LedgerErrorCode = "LED-010002"
	ErrCodeInvalidExpenseAmount LedgerErrorCode = "LED-010003"
	ErrCodeInvalidDescription   LedgerErrorCode = "LED-010004"
	ErrCodeInvalidExpenseDate   LedgerErrorCode = "LED-010005"
	ErrCodeMissingFields        LedgerErrorCode = "LED-010006"
	ErrCodeCategoryNameExists   LedgerErrorCode = "LED-010007"
	ErrCodeCategoryNotFound     LedgerErrorCode = "LED-010008"
	ErrCodeExpenseNotFound      LedgerErrorCode = "LED-010009"
	ErrCodeInvalidGrossPay      LedgerErrorCode = "LED-010010"
	ErrCodeDuplicateID          LedgerErrorCode = "LED-010011"

	// Persistence errors (02XXXX)
	ErrCodePersistenceFailed LedgerErrorCode = "LED-020001"
	ErrCodeStaleState        LedgerErrorCode = "LED-020002"

	// Request errors (03XXXX)
	ErrCodeInvalidRequest LedgerErrorCode = "LED-030001"
	ErrCodeRateLimited    LedgerErrorCode = "LED-030002"
)

// LedgerError represents a ledger error with kind, code and message.
// Field is set for validation errors that can be attributed to one input field.
type LedgerError struct {
	Kind    Kind
	Code    LedgerErrorCode
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given kind, code and message.
func NewLedgerError(kind Kind, code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a field-attributed validation error.
func NewValidationError(code LedgerErrorCode, field, message string) *LedgerError {
	return &LedgerError{
		Kind:    KindValidation,
		Code:    code,
		Field:   field,
		Message: message,
		Err:     ErrValidation,
	}
}

// NewPersistenceError wraps a storage failure so that the reconciler can roll back.
func NewPersistenceError(message string, err error) *LedgerError {
	return &LedgerError{
		Kind:    KindPersistence,
		Code:    ErrCodePersistenceFailed,
		Message: message,
		Err:     errors.Join(ErrPersistence, err),
	}
}

// KindOf returns the kind of a ledger error, or the empty kind for any other error.
func KindOf(err error) Kind {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Kind
	}
	return ""
}

// IsKind reports whether err is a ledger error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

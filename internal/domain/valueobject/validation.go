// Package valueobject contains domain value objects for the budget ledger.
package valueobject

// ValidationResult is the outcome of validating one input field: either Ok, or an
// error attributed to Field with a human-readable Message.
type ValidationResult struct {
	ok      bool
	Field   string
	Message string
}

// Ok returns a successful validation result.
func Ok() ValidationResult {
	return ValidationResult{ok: true}
}

// Invalid returns a failed validation result for field.
func Invalid(field, message string) ValidationResult {
	return ValidationResult{Field: field, Message: message}
}

// IsOk reports whether the validation passed.
func (r ValidationResult) IsOk() bool {
	return r.ok
}

// FirstInvalid returns the first failed result, or Ok when all results passed.
func FirstInvalid(results ...ValidationResult) ValidationResult {
	for _, r := range results {
		if !r.ok {
			return r
		}
	}
	return Ok()
}

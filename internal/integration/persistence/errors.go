package persistence

import (
	"fmt"

	"github.com/google/uuid"

	domainerror "github.com/budget-ledger/backend/internal/domain/error"
)

func categoryNotFound(id uuid.UUID) error {
	return domainerror.NewLedgerError(
		domainerror.KindNotFound,
		domainerror.ErrCodeCategoryNotFound,
		fmt.Sprintf("category %s not found", id),
		domainerror.ErrCategoryNotFound,
	)
}

func expenseNotFound(id uuid.UUID) error {
	return domainerror.NewLedgerError(
		domainerror.KindNotFound,
		domainerror.ErrCodeExpenseNotFound,
		fmt.Sprintf("expense %s not found", id),
		domainerror.ErrExpenseNotFound,
	)
}

// storeError wraps a backend failure as a persistence error. Ledger errors raised
// by the store itself are returned unchanged.
func storeError(message string, err error) error {
	if domainerror.KindOf(err) != "" {
		return err
	}
	return domainerror.NewPersistenceError(message, err)
}

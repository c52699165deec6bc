// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/budget-ledger/backend/internal/domain/error"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// statusForKind maps ledger error kinds to HTTP status codes.
func statusForKind(kind domainerror.Kind) int {
	switch kind {
	case domainerror.KindValidation, domainerror.KindInvalidInput:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindDuplicate:
		return http.StatusConflict
	case domainerror.KindPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the response for a use case error.
func handleError(ctx *gin.Context, err error) {
	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		status := statusForKind(ledgerErr.Kind)
		if status >= http.StatusInternalServerError {
			slog.Error("Request failed",
				"path", ctx.FullPath(),
				"code", ledgerErr.Code,
				"error", err,
			)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
			Field: ledgerErr.Field,
		})
		return
	}

	slog.Error("Unexpected error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// badRequest writes a 400 response for a malformed request.
func badRequest(ctx *gin.Context, message, field string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  string(domainerror.ErrCodeInvalidRequest),
		Field: field,
	})
}

// pathID parses the :id URL parameter, writing a 400 response when it is not a UUID.
func pathID(ctx *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid "+what+" ID format", "id")
		return uuid.Nil, false
	}
	return id, true
}

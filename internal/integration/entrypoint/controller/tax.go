package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-ledger/backend/internal/application/usecase/income"
	"github.com/budget-ledger/backend/internal/domain/tax"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// TaxController handles pay breakdown previews.
type TaxController struct {
	computeUseCase *income.ComputeNetPayUseCase
}

// NewTaxController creates a new tax controller instance.
func NewTaxController(computeUseCase *income.ComputeNetPayUseCase) *TaxController {
	return &TaxController{
		computeUseCase: computeUseCase,
	}
}

// Breakdown handles GET /tax/breakdown?gross= requests.
func (c *TaxController) Breakdown(ctx *gin.Context) {
	gross, err := tax.ParseGrossPay(ctx.Query("gross"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.computeUseCase.Execute(ctx.Request.Context(), income.ComputeNetPayInput{GrossPay: gross})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPayBreakdownResponse(output.Breakdown))
}

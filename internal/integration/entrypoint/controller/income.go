package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-ledger/backend/internal/application/usecase/income"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// IncomeController handles income endpoints.
type IncomeController struct {
	getUseCase  *income.GetIncomeUseCase
	saveUseCase *income.SaveIncomeUseCase
}

// NewIncomeController creates a new income controller instance.
func NewIncomeController(getUseCase *income.GetIncomeUseCase, saveUseCase *income.SaveIncomeUseCase) *IncomeController {
	return &IncomeController{
		getUseCase:  getUseCase,
		saveUseCase: saveUseCase,
	}
}

// Get handles GET /income requests.
func (c *IncomeController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context(), income.GetIncomeInput{})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomeResponse(output.Breakdown))
}

// Save handles PUT /income requests.
func (c *IncomeController) Save(ctx *gin.Context) {
	var req dto.SaveIncomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", "gross_pay")
		return
	}

	output, err := c.saveUseCase.Execute(ctx.Request.Context(), income.SaveIncomeInput{GrossPay: *req.GrossPay})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToIncomeResponse(&output.Breakdown))
}

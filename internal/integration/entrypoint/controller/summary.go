package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budget-ledger/backend/internal/application/usecase/dashboard"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// SummaryController handles the budget summary endpoint.
type SummaryController struct {
	summaryUseCase *dashboard.GetSummaryUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(summaryUseCase *dashboard.GetSummaryUseCase) *SummaryController {
	return &SummaryController{
		summaryUseCase: summaryUseCase,
	}
}

// Get handles GET /summary requests.
func (c *SummaryController) Get(ctx *gin.Context) {
	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/budget-ledger/backend/internal/application/usecase/expense"
	"github.com/budget-ledger/backend/internal/domain/entity"
	"github.com/budget-ledger/backend/internal/domain/ledger"
	"github.com/budget-ledger/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	listUseCase   *expense.ListExpensesUseCase
	addUseCase    *expense.AddExpenseUseCase
	updateUseCase *expense.UpdateExpenseUseCase
	deleteUseCase *expense.DeleteExpenseUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	listUseCase *expense.ListExpensesUseCase,
	addUseCase *expense.AddExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
) *ExpenseController {
	return &ExpenseController{
		listUseCase:   listUseCase,
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories/:id/expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	categoryID, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{CategoryID: categoryID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Expenses))
}

// Create handles POST /categories/:id/expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	categoryID, ok := pathID(ctx, "category")
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", "")
		return
	}

	date := entity.CalendarDate(time.Now())
	if req.Date != "" {
		parsed, ok := parseDate(ctx, req.Date)
		if !ok {
			return
		}
		date = parsed
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), expense.AddExpenseInput{
		CategoryID:  categoryID,
		Amount:      *req.Amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseMutationResponse(output.Expense, output.Category))
}

// Update handles PATCH /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	expenseID, ok := pathID(ctx, "expense")
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", "")
		return
	}

	input := expense.UpdateExpenseInput{
		ExpenseID:   expenseID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != nil {
		parsed, ok := parseDate(ctx, *req.Date)
		if !ok {
			return
		}
		input.Date = &parsed
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseMutationResponse(output.Expense, output.Category))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	expenseID, ok := pathID(ctx, "expense")
	if !ok {
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{ExpenseID: expenseID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseDate(ctx *gin.Context, value string) (time.Time, bool) {
	date, err := entity.ParseDate(value)
	if err != nil {
		badRequest(ctx, "date must be formatted as YYYY-MM-DD", ledger.FieldDate)
		return time.Time{}, false
	}
	return date, true
}

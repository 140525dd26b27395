package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/internal/application/usecase/budget"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	listUseCase *budget.ListBudgetsUseCase
	setUseCase  *budget.SetBudgetsUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(listUseCase *budget.ListBudgetsUseCase, setUseCase *budget.SetBudgetsUseCase) *BudgetController {
	return &BudgetController{
		listUseCase: listUseCase,
		setUseCase:  setUseCase,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output))
}

// Set handles PUT /budgets requests.
func (c *BudgetController) Set(ctx *gin.Context) {
	var req dto.SetBudgetsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidBudgetAmount))
		return
	}

	input := budget.SetBudgetsInput{
		Budgets: make([]budget.BudgetInput, len(req.Budgets)),
	}
	for i, b := range req.Budgets {
		input.Budgets[i] = budget.BudgetInput{
			ID:         b.ID,
			CategoryID: b.CategoryID,
			Amount:     b.Amount,
			Period:     entity.BudgetPeriod(b.Period),
			Spent:      b.Spent,
		}
	}

	output, err := c.setUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output))
}

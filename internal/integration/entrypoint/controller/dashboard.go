package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/internal/application/usecase/dashboard"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/dto"
)

// DashboardController handles summary and analytics endpoints.
type DashboardController struct {
	ledgerSummaryUseCase     *dashboard.GetLedgerSummaryUseCase
	periodSummaryUseCase     *dashboard.GetPeriodSummaryUseCase
	categoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase
	monthlyTotalsUseCase     *dashboard.GetMonthlyTotalsUseCase
	balanceTrendUseCase      *dashboard.GetBalanceTrendUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	ledgerSummaryUseCase *dashboard.GetLedgerSummaryUseCase,
	periodSummaryUseCase *dashboard.GetPeriodSummaryUseCase,
	categoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
	monthlyTotalsUseCase *dashboard.GetMonthlyTotalsUseCase,
	balanceTrendUseCase *dashboard.GetBalanceTrendUseCase,
) *DashboardController {
	return &DashboardController{
		ledgerSummaryUseCase:     ledgerSummaryUseCase,
		periodSummaryUseCase:     periodSummaryUseCase,
		categoryBreakdownUseCase: categoryBreakdownUseCase,
		monthlyTotalsUseCase:     monthlyTotalsUseCase,
		balanceTrendUseCase:      balanceTrendUseCase,
	}
}

// GetLedgerSummary handles GET /summary requests.
func (c *DashboardController) GetLedgerSummary(ctx *gin.Context) {
	output, err := c.ledgerSummaryUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(output))
}

// GetPeriodSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetPeriodSummary(ctx *gin.Context) {
	period, ok := parsePeriod(ctx)
	if !ok {
		return
	}

	output, err := c.periodSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetPeriodSummaryInput{Period: period})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(output))
}

// GetCategoryBreakdown handles GET /dashboard/categories requests.
func (c *DashboardController) GetCategoryBreakdown(ctx *gin.Context) {
	period, ok := parsePeriod(ctx)
	if !ok {
		return
	}

	output, err := c.categoryBreakdownUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryBreakdownInput{Period: period})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// GetMonthlyTotals handles GET /dashboard/monthly requests.
func (c *DashboardController) GetMonthlyTotals(ctx *gin.Context) {
	period, ok := parsePeriod(ctx)
	if !ok {
		return
	}

	output, err := c.monthlyTotalsUseCase.Execute(ctx.Request.Context(), dashboard.GetMonthlyTotalsInput{Period: period})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyTotalsResponse(output))
}

// GetBalanceTrend handles GET /dashboard/trend requests.
func (c *DashboardController) GetBalanceTrend(ctx *gin.Context) {
	period, ok := parsePeriod(ctx)
	if !ok {
		return
	}

	output, err := c.balanceTrendUseCase.Execute(ctx.Request.Context(), dashboard.GetBalanceTrendInput{Period: period})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBalanceTrendResponse(output))
}

// parsePeriod reads ?period= and writes the error response itself.
func parsePeriod(ctx *gin.Context) (dashboard.TimePeriod, bool) {
	period, err := dashboard.ParseTimePeriod(ctx.Query("period"))
	if err != nil {
		handleError(ctx, err)
		return "", false
	}
	return period, true
}

package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/internal/application/usecase/preferences"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/dto"
)

// PreferencesController handles preferences and onboarding endpoints.
type PreferencesController struct {
	getUseCase        *preferences.GetPreferencesUseCase
	updateUseCase     *preferences.UpdatePreferencesUseCase
	replaceUseCase    *preferences.ReplacePreferencesUseCase
	onboardingUseCase *preferences.CompleteOnboardingUseCase
}

// NewPreferencesController creates a new preferences controller instance.
func NewPreferencesController(
	getUseCase *preferences.GetPreferencesUseCase,
	updateUseCase *preferences.UpdatePreferencesUseCase,
	replaceUseCase *preferences.ReplacePreferencesUseCase,
	onboardingUseCase *preferences.CompleteOnboardingUseCase,
) *PreferencesController {
	return &PreferencesController{
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		replaceUseCase:    replaceUseCase,
		onboardingUseCase: onboardingUseCase,
	}
}

// Get handles GET /preferences requests.
func (c *PreferencesController) Get(ctx *gin.Context) {
	output, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreferencesResponse(output))
}

// Replace handles PUT /preferences requests.
func (c *PreferencesController) Replace(ctx *gin.Context) {
	var req dto.ReplacePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidTheme))
		return
	}

	output, err := c.replaceUseCase.Execute(ctx.Request.Context(), entity.UserPreferences{
		Currency:             req.Currency,
		Theme:                entity.Theme(req.Theme),
		BiometricEnabled:     req.BiometricEnabled,
		PinEnabled:           req.PinEnabled,
		NotificationsEnabled: req.NotificationsEnabled,
		BudgetAlerts:         req.BudgetAlerts,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreferencesResponse(output))
}

// Update handles PATCH /preferences requests.
func (c *PreferencesController) Update(ctx *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), "")
		return
	}

	input := preferences.UpdatePreferencesInput{
		Currency:             req.Currency,
		BiometricEnabled:     req.BiometricEnabled,
		PinEnabled:           req.PinEnabled,
		NotificationsEnabled: req.NotificationsEnabled,
		BudgetAlerts:         req.BudgetAlerts,
	}
	if req.Theme != nil {
		theme := entity.Theme(*req.Theme)
		input.Theme = &theme
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreferencesResponse(output))
}

// CompleteOnboarding handles POST /onboarding requests.
func (c *PreferencesController) CompleteOnboarding(ctx *gin.Context) {
	var req dto.CompleteOnboardingRequest
	// An empty body keeps the current currency.
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(ctx, "Invalid request body: "+err.Error(), "")
		return
	}

	output, err := c.onboardingUseCase.Execute(ctx.Request.Context(), preferences.CompleteOnboardingInput{
		Currency: req.Currency,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPreferencesResponse(output))
}

package dto

import (
	"github.com/finance-tracker/ewallet/internal/application/usecase/preferences"
)

// ReplacePreferencesRequest represents the request body for replacing preferences.
type ReplacePreferencesRequest struct {
	Currency             string `json:"currency" binding:"required"`
	Theme                string `json:"theme" binding:"required"`
	BiometricEnabled     bool   `json:"biometric_enabled"`
	PinEnabled           bool   `json:"pin_enabled"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	BudgetAlerts         bool   `json:"budget_alerts"`
}

// UpdatePreferencesRequest represents the request body for patching preferences.
type UpdatePreferencesRequest struct {
	Currency             *string `json:"currency,omitempty"`
	Theme                *string `json:"theme,omitempty"`
	BiometricEnabled     *bool   `json:"biometric_enabled,omitempty"`
	PinEnabled           *bool   `json:"pin_enabled,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	BudgetAlerts         *bool   `json:"budget_alerts,omitempty"`
}

// CompleteOnboardingRequest represents the request body for finishing onboarding.
type CompleteOnboardingRequest struct {
	Currency string `json:"currency"`
}

// CurrencyResponse describes the selected display currency.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// PreferencesResponse represents the preferences in API responses.
type PreferencesResponse struct {
	Currency             CurrencyResponse `json:"currency"`
	Theme                string           `json:"theme"`
	BiometricEnabled     bool             `json:"biometric_enabled"`
	PinEnabled           bool             `json:"pin_enabled"`
	NotificationsEnabled bool             `json:"notifications_enabled"`
	BudgetAlerts         bool             `json:"budget_alerts"`
	IsOnboarded          bool             `json:"is_onboarded"`
}

// ToPreferencesResponse converts a PreferencesOutput to a PreferencesResponse DTO.
func ToPreferencesResponse(output *preferences.PreferencesOutput) PreferencesResponse {
	p := output.Preferences
	return PreferencesResponse{
		Currency: CurrencyResponse{
			Code:   p.Currency,
			Symbol: output.Currency.Symbol,
			Name:   output.Currency.Name,
		},
		Theme:                string(p.Theme),
		BiometricEnabled:     p.BiometricEnabled,
		PinEnabled:           p.PinEnabled,
		NotificationsEnabled: p.NotificationsEnabled,
		BudgetAlerts:         p.BudgetAlerts,
		IsOnboarded:          output.IsOnboarded,
	}
}

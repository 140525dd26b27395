// Package preferences contains preferences and onboarding use cases.
package preferences

import (
	"context"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// PreferencesOutput is the preferences singleton with its resolved currency.
type PreferencesOutput struct {
	Preferences entity.UserPreferences
	Currency    entity.Currency
	IsOnboarded bool
}

// GetPreferencesUseCase handles reading the current preferences.
type GetPreferencesUseCase struct {
	ledger adapter.LedgerReader
}

// NewGetPreferencesUseCase creates a new GetPreferencesUseCase instance.
func NewGetPreferencesUseCase(ledger adapter.LedgerReader) *GetPreferencesUseCase {
	return &GetPreferencesUseCase{
		ledger: ledger,
	}
}

// Execute returns the preferences and onboarding flag.
func (uc *GetPreferencesUseCase) Execute(_ context.Context) (*PreferencesOutput, error) {
	return toOutput(uc.ledger.Preferences(), uc.ledger.IsOnboarded()), nil
}

func toOutput(p entity.UserPreferences, onboarded bool) *PreferencesOutput {
	return &PreferencesOutput{
		Preferences: p,
		Currency:    entity.CurrencyOrDefault(p.Currency),
		IsOnboarded: onboarded,
	}
}

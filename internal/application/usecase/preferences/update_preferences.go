package preferences

import (
	"context"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// UpdatePreferencesInput represents a partial preferences update.
// Nil fields keep their current value.
type UpdatePreferencesInput struct {
	Currency             *string
	Theme                *entity.Theme
	BiometricEnabled     *bool
	PinEnabled           *bool
	NotificationsEnabled *bool
	BudgetAlerts         *bool
}

// UpdatePreferencesUseCase handles patching the preferences singleton.
type UpdatePreferencesUseCase struct {
	ledger adapter.Ledger
}

// NewUpdatePreferencesUseCase creates a new UpdatePreferencesUseCase instance.
func NewUpdatePreferencesUseCase(ledger adapter.Ledger) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{
		ledger: ledger,
	}
}

// Execute applies the patch on top of the current preferences and stores
// the result as a whole.
func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, input UpdatePreferencesInput) (*PreferencesOutput, error) {
	prefs := uc.ledger.Preferences()

	if input.Currency != nil {
		if err := validateCurrency(*input.Currency); err != nil {
			return nil, err
		}
		prefs.Currency = *input.Currency
	}
	if input.Theme != nil {
		prefs.Theme = *input.Theme
	}
	if input.BiometricEnabled != nil {
		prefs.BiometricEnabled = *input.BiometricEnabled
	}
	if input.PinEnabled != nil {
		prefs.PinEnabled = *input.PinEnabled
	}
	if input.NotificationsEnabled != nil {
		prefs.NotificationsEnabled = *input.NotificationsEnabled
	}
	if input.BudgetAlerts != nil {
		prefs.BudgetAlerts = *input.BudgetAlerts
	}

	if err := uc.ledger.SetPreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return toOutput(prefs, uc.ledger.IsOnboarded()), nil
}

// ReplacePreferencesUseCase handles replacing the preferences singleton.
type ReplacePreferencesUseCase struct {
	ledger adapter.Ledger
}

// NewReplacePreferencesUseCase creates a new ReplacePreferencesUseCase instance.
func NewReplacePreferencesUseCase(ledger adapter.Ledger) *ReplacePreferencesUseCase {
	return &ReplacePreferencesUseCase{
		ledger: ledger,
	}
}

// Execute stores prefs wholesale after checking the currency.
func (uc *ReplacePreferencesUseCase) Execute(ctx context.Context, prefs entity.UserPreferences) (*PreferencesOutput, error) {
	if err := validateCurrency(prefs.Currency); err != nil {
		return nil, err
	}
	if err := uc.ledger.SetPreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return toOutput(prefs, uc.ledger.IsOnboarded()), nil
}

func validateCurrency(code string) error {
	if _, ok := entity.FindCurrency(code); !ok {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCurrency,
			"currency '"+code+"' is not supported",
			domainerror.ErrInvalidCurrency,
		)
	}
	return nil
}

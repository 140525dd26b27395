package preferences

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
)

// CompleteOnboardingInput represents the input for finishing onboarding.
type CompleteOnboardingInput struct {
	Currency string
}

// CompleteOnboardingUseCase handles the first-run flow.
type CompleteOnboardingUseCase struct {
	ledger adapter.Ledger
}

// NewCompleteOnboardingUseCase creates a new CompleteOnboardingUseCase instance.
func NewCompleteOnboardingUseCase(ledger adapter.Ledger) *CompleteOnboardingUseCase {
	return &CompleteOnboardingUseCase{
		ledger: ledger,
	}
}

// Execute stores the chosen currency and then marks onboarding complete.
// An empty currency keeps the current one.
func (uc *CompleteOnboardingUseCase) Execute(ctx context.Context, input CompleteOnboardingInput) (*PreferencesOutput, error) {
	prefs := uc.ledger.Preferences()
	if input.Currency != "" {
		if err := validateCurrency(input.Currency); err != nil {
			return nil, err
		}
		prefs.Currency = input.Currency
		if err := uc.ledger.SetPreferences(ctx, prefs); err != nil {
			return nil, err
		}
	}

	if err := uc.ledger.SetOnboarded(ctx, true); err != nil {
		return nil, err
	}

	slog.Info("Onboarding completed", "currency", prefs.Currency)
	return toOutput(prefs, true), nil
}

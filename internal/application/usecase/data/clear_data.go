package data

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// ClearDataUseCase handles wiping transactions and budgets.
type ClearDataUseCase struct {
	ledger adapter.Ledger
}

// NewClearDataUseCase creates a new ClearDataUseCase instance.
func NewClearDataUseCase(ledger adapter.Ledger) *ClearDataUseCase {
	return &ClearDataUseCase{
		ledger: ledger,
	}
}

// Execute empties the transaction collection and the budget list.
// Preferences and the onboarding flag are kept.
func (uc *ClearDataUseCase) Execute(ctx context.Context) error {
	if err := uc.ledger.ReplaceTransactions(ctx, []entity.Transaction{}); err != nil {
		return err
	}
	if err := uc.ledger.SetBudgets(ctx, []entity.Budget{}); err != nil {
		return err
	}
	slog.Info("Ledger data cleared")
	return nil
}

package transaction

import (
	"context"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID string
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	ledger adapter.Ledger
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(ledger adapter.Ledger) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		ledger: ledger,
	}
}

// Execute removes the transaction. Deleting an unknown ID succeeds.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	return uc.ledger.DeleteTransaction(ctx, input.TransactionID)
}

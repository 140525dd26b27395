package transaction

import (
	"context"
	"fmt"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/application/ledger"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// ReplaceTransactionsInput represents the input for replacing the whole collection.
type ReplaceTransactionsInput struct {
	Transactions []entity.Transaction
}

// ReplaceTransactionsUseCase handles wholesale replacement of the collection.
type ReplaceTransactionsUseCase struct {
	ledger adapter.Ledger
}

// NewReplaceTransactionsUseCase creates a new ReplaceTransactionsUseCase instance.
func NewReplaceTransactionsUseCase(ledger adapter.Ledger) *ReplaceTransactionsUseCase {
	return &ReplaceTransactionsUseCase{
		ledger: ledger,
	}
}

// Execute validates every record and rejects duplicate IDs before handing
// the list to the ledger, which stores it verbatim.
func (uc *ReplaceTransactionsUseCase) Execute(ctx context.Context, input ReplaceTransactionsInput) error {
	if err := ValidateCollection(input.Transactions); err != nil {
		return err
	}
	return uc.ledger.ReplaceTransactions(ctx, input.Transactions)
}

// ValidateCollection checks each record and the uniqueness of IDs.
func ValidateCollection(transactions []entity.Transaction) error {
	seen := make(map[string]struct{}, len(transactions))
	for i, t := range transactions {
		if err := ledger.ValidateTransaction(t); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionID,
				fmt.Sprintf("transaction %d: duplicate id %q", i, t.ID),
				domainerror.ErrInvalidTransactionID,
			)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

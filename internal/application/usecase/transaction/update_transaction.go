package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields keep their stored value.
type UpdateTransactionInput struct {
	TransactionID string
	Amount        *decimal.Decimal
	Title         *string
	Type          *entity.TransactionType
	Category      *string
	Date          *time.Time
	Notes         *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	ledger adapter.Ledger
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(ledger adapter.Ledger) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		ledger: ledger,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	transaction, ok := uc.ledger.Transaction(input.TransactionID)
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}

	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Title != nil {
		transaction.Title = *input.Title
	}
	if input.Type != nil {
		transaction.Type = *input.Type
	}
	if input.Category != nil {
		transaction.Category = *input.Category
	}
	if input.Date != nil {
		transaction.Date = *input.Date
	}
	if input.Notes != nil {
		transaction.Notes = *input.Notes
	}

	if err := validateLengths(transaction.Title, transaction.Notes); err != nil {
		return nil, err
	}

	updated, err := uc.ledger.UpdateTransaction(ctx, transaction)
	if err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{Transaction: toOutput(updated)}, nil
}

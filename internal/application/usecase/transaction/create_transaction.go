package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

const (
	// MaxTitleLength is the maximum allowed length for transaction titles.
	MaxTitleLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Amount   decimal.Decimal
	Title    string
	Type     entity.TransactionType
	Category string
	Date     time.Time // zero means now
	Notes    string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	ledger adapter.Ledger
	clock  adapter.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(ledger adapter.Ledger, clock adapter.Clock) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateLengths(input.Title, input.Notes); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = uc.clock.Now()
	}

	created, err := uc.ledger.AddTransaction(ctx, entity.TransactionDraft{
		Amount:   input.Amount,
		Title:    input.Title,
		Type:     input.Type,
		Category: input.Category,
		Date:     date,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &CreateTransactionOutput{Transaction: toOutput(created)}, nil
}

func validateLengths(title, notes string) error {
	if len(title) > MaxTitleLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionTitle,
			fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
			domainerror.ErrInvalidTransactionTitle,
		)
	}
	if len(notes) > MaxNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionNotes,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrInvalidTransactionNotes,
		)
	}
	return nil
}

package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/application/ledger"
	"github.com/finance-tracker/ewallet/internal/application/usecase/transaction"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// ImportDataInput represents the input for restoring an export document.
type ImportDataInput struct {
	Content []byte
}

// ImportDataOutput summarizes what was restored.
type ImportDataOutput struct {
	Transactions        int
	Budgets             int
	PreferencesRestored bool
}

// importDocument mirrors ExportDocument with the collections left raw so
// they can go through the ledger decoders.
type importDocument struct {
	Transactions json.RawMessage `json:"transactions"`
	Preferences  json.RawMessage `json:"preferences"`
	Budgets      json.RawMessage `json:"budgets"`
}

// ImportDataUseCase handles restoring a JSON export.
type ImportDataUseCase struct {
	ledger adapter.Ledger
}

// NewImportDataUseCase creates a new ImportDataUseCase instance.
func NewImportDataUseCase(ledger adapter.Ledger) *ImportDataUseCase {
	return &ImportDataUseCase{
		ledger: ledger,
	}
}

// Execute parses the whole document before touching the ledger; any
// malformed record rejects the import. Transactions and budgets are then
// replaced, and preferences too when the document carries them.
func (uc *ImportDataUseCase) Execute(ctx context.Context, input ImportDataInput) (*ImportDataOutput, error) {
	var doc importDocument
	if err := json.Unmarshal(input.Content, &doc); err != nil {
		return nil, invalidDocument("document is not a JSON object", err)
	}
	if len(doc.Transactions) == 0 {
		return nil, invalidDocument("document has no transactions field", nil)
	}

	transactions, skipped, err := ledger.DecodeTransactions(string(doc.Transactions))
	if err != nil {
		return nil, invalidDocument("transactions must be an array", err)
	}
	if len(skipped) > 0 {
		return nil, invalidDocument(fmt.Sprintf("%d malformed transactions", len(skipped)), skipped[0])
	}
	if err := transaction.ValidateCollection(transactions); err != nil {
		return nil, invalidDocument("transactions are invalid", err)
	}

	budgets := []entity.Budget{}
	if len(doc.Budgets) > 0 && string(doc.Budgets) != "null" {
		decoded, skipped, err := ledger.DecodeBudgets(string(doc.Budgets))
		if err != nil {
			return nil, invalidDocument("budgets must be an array", err)
		}
		if len(skipped) > 0 {
			return nil, invalidDocument(fmt.Sprintf("%d malformed budgets", len(skipped)), skipped[0])
		}
		budgets = decoded
	}

	var preferences *entity.UserPreferences
	if len(doc.Preferences) > 0 && string(doc.Preferences) != "null" {
		decoded, err := ledger.DecodePreferences(string(doc.Preferences))
		if err != nil {
			return nil, invalidDocument("preferences are invalid", err)
		}
		preferences = &decoded
	}

	if err := uc.ledger.ReplaceTransactions(ctx, transactions); err != nil {
		return nil, err
	}
	if err := uc.ledger.SetBudgets(ctx, budgets); err != nil {
		return nil, err
	}
	if preferences != nil {
		if err := uc.ledger.SetPreferences(ctx, *preferences); err != nil {
			return nil, err
		}
	}

	slog.Info("Ledger data imported",
		"transactions", len(transactions),
		"budgets", len(budgets),
		"preferences", preferences != nil,
	)

	return &ImportDataOutput{
		Transactions:        len(transactions),
		Budgets:             len(budgets),
		PreferencesRestored: preferences != nil,
	}, nil
}

func invalidDocument(message string, err error) error {
	if err != nil {
		err = fmt.Errorf("%w: %w", domainerror.ErrInvalidExportDocument, err)
	} else {
		err = domainerror.ErrInvalidExportDocument
	}
	return domainerror.NewLedgerError(domainerror.ErrCodeInvalidExportDocument, message, err)
}

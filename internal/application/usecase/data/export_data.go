// Package data contains backup, restore and reset use cases.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/application/ledger"
)

// ExportDocument is the JSON backup format.
type ExportDocument struct {
	Transactions []ledger.TransactionRecord `json:"transactions"`
	Preferences  ledger.PreferencesRecord   `json:"preferences"`
	Budgets      []ledger.BudgetRecord      `json:"budgets"`
	ExportDate   string                     `json:"exportDate"`
}

// ExportDataOutput represents the output of a JSON export.
type ExportDataOutput struct {
	Document ExportDocument
	Content  []byte // pretty printed Document
	FileName string
}

// ExportDataUseCase handles exporting the ledger as a JSON document.
type ExportDataUseCase struct {
	ledger adapter.LedgerReader
	clock  adapter.Clock
}

// NewExportDataUseCase creates a new ExportDataUseCase instance.
func NewExportDataUseCase(ledger adapter.LedgerReader, clock adapter.Clock) *ExportDataUseCase {
	return &ExportDataUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Execute builds the export document from one consistent snapshot.
func (uc *ExportDataUseCase) Execute(_ context.Context) (*ExportDataOutput, error) {
	snapshot := uc.ledger.Snapshot()
	now := uc.clock.Now()

	doc := ExportDocument{
		Transactions: make([]ledger.TransactionRecord, len(snapshot.Transactions)),
		Preferences:  ledger.PreferencesToRecord(snapshot.Preferences),
		Budgets:      make([]ledger.BudgetRecord, len(snapshot.Budgets)),
		ExportDate:   now.UTC().Format(time.RFC3339Nano),
	}
	for i, t := range snapshot.Transactions {
		doc.Transactions[i] = ledger.TransactionToRecord(t)
	}
	for i, b := range snapshot.Budgets {
		doc.Budgets[i] = ledger.BudgetToRecord(b)
	}

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export document: %w", err)
	}

	return &ExportDataOutput{
		Document: doc,
		Content:  content,
		FileName: fmt.Sprintf("ewallet_export_%s.json", now.Format("20060102")),
	}, nil
}

package data

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// WorkbookSheet is the name of the transactions sheet.
const WorkbookSheet = "Transactions"

var workbookHeaders = []string{"Type", "Category", "Title", "Amount", "Notes", "Date"}

// ExportWorkbookOutput represents the output of a spreadsheet export.
type ExportWorkbookOutput struct {
	Content  []byte
	FileName string
	Rows     int
}

// ExportWorkbookUseCase handles exporting transactions as an XLSX workbook.
type ExportWorkbookUseCase struct {
	ledger adapter.LedgerReader
	clock  adapter.Clock
}

// NewExportWorkbookUseCase creates a new ExportWorkbookUseCase instance.
func NewExportWorkbookUseCase(ledger adapter.LedgerReader, clock adapter.Clock) *ExportWorkbookUseCase {
	return &ExportWorkbookUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Execute writes one row per transaction in stored order.
func (uc *ExportWorkbookUseCase) Execute(_ context.Context) (*ExportWorkbookOutput, error) {
	transactions := uc.ledger.Transactions()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close workbook", "error", err)
		}
	}()

	index, err := f.NewSheet(WorkbookSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, h := range workbookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(WorkbookSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for idx, t := range transactions {
		row := idx + 2
		values := []any{
			string(t.Type),
			entity.ResolveCategory(t.Category).Name,
			t.Title,
			t.Amount.InexactFloat64(),
			t.Notes,
			t.Date.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(WorkbookSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(WorkbookSheet, "A", "A", 10)
	_ = f.SetColWidth(WorkbookSheet, "B", "B", 18)
	_ = f.SetColWidth(WorkbookSheet, "C", "C", 30)
	_ = f.SetColWidth(WorkbookSheet, "D", "D", 12)
	_ = f.SetColWidth(WorkbookSheet, "E", "E", 30)
	_ = f.SetColWidth(WorkbookSheet, "F", "F", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return &ExportWorkbookOutput{
		Content:  buf.Bytes(),
		FileName: fmt.Sprintf("ewallet_transactions_%s.xlsx", uc.clock.Now().Format("20060102")),
		Rows:     len(transactions),
	}, nil
}

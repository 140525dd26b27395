// Package transaction contains transaction-related use cases.
package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID        string
	Amount    decimal.Decimal
	Title     string
	Type      entity.TransactionType
	Category  CategoryOutput
	Date      time.Time
	Notes     string
	Synced    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    string
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

// TotalsOutput represents aggregated totals in the output.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

func toOutput(t entity.Transaction) *TransactionOutput {
	category := entity.ResolveCategory(t.Category)
	return &TransactionOutput{
		ID:     t.ID,
		Amount: t.Amount,
		Title:  t.Title,
		Type:   t.Type,
		Category: CategoryOutput{
			ID:    t.Category,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
			Type:  category.Type,
		},
		Date:      t.Date,
		Notes:     t.Notes,
		Synced:    t.Synced,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

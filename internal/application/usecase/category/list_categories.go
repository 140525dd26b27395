// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	TransactionType *entity.TransactionType // Optional filter by transaction type
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID               string
	Name             string
	Color            string
	Icon             string
	Type             entity.CategoryType
	TransactionCount int
	Total            decimal.Decimal
}

// ListCategoriesUseCase handles listing the category catalog.
type ListCategoriesUseCase struct {
	ledger adapter.LedgerReader
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(ledger adapter.LedgerReader) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		ledger: ledger,
	}
}

// Execute returns the catalog in catalog order, each entry carrying how
// many stored transactions reference it and their summed amount.
func (uc *ListCategoriesUseCase) Execute(_ context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories := entity.DefaultCategories
	if input.TransactionType != nil {
		if !input.TransactionType.IsValid() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"type must be income or expense",
				domainerror.ErrInvalidTransactionType,
			)
		}
		categories = entity.CategoriesFor(*input.TransactionType)
	}

	type usage struct {
		count int
		total decimal.Decimal
	}
	stats := make(map[string]*usage)
	for _, t := range uc.ledger.Transactions() {
		u, ok := stats[t.Category]
		if !ok {
			u = &usage{}
			stats[t.Category] = u
		}
		u.count++
		u.total = u.total.Add(t.Amount)
	}

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, len(categories)),
	}
	for i, c := range categories {
		out := &CategoryOutput{
			ID:    c.ID,
			Name:  c.Name,
			Color: c.Color,
			Icon:  c.Icon,
			Type:  c.Type,
			Total: decimal.Zero,
		}
		if u, ok := stats[c.ID]; ok {
			out.TransactionCount = u.count
			out.Total = u.total
		}
		output.Categories[i] = out
	}

	return output, nil
}

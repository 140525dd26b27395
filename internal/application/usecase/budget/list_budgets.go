// Package budget contains budget-related use cases.
package budget

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// BudgetOutput represents a budget with its resolved category.
type BudgetOutput struct {
	ID        string
	Category  entity.Category
	Amount    decimal.Decimal
	Period    entity.BudgetPeriod
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Exceeded  bool
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetOutput
}

// ListBudgetsUseCase handles listing budgets.
type ListBudgetsUseCase struct {
	ledger adapter.LedgerReader
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(ledger adapter.LedgerReader) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		ledger: ledger,
	}
}

// Execute returns the stored budgets in stored order.
func (uc *ListBudgetsUseCase) Execute(_ context.Context) (*ListBudgetsOutput, error) {
	return toListOutput(uc.ledger.Budgets()), nil
}

func toListOutput(budgets []entity.Budget) *ListBudgetsOutput {
	output := &ListBudgetsOutput{
		Budgets: make([]*BudgetOutput, len(budgets)),
	}
	for i, b := range budgets {
		output.Budgets[i] = &BudgetOutput{
			ID:        b.ID,
			Category:  entity.ResolveCategory(b.CategoryID),
			Amount:    b.Amount,
			Period:    b.Period,
			Spent:     b.Spent,
			Remaining: b.Amount.Sub(b.Spent),
			Exceeded:  b.Spent.GreaterThan(b.Amount),
		}
	}
	return output
}

package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// BudgetInput is one budget of a SetBudgets request. An empty ID gets a
// fresh one.
type BudgetInput struct {
	ID         string
	CategoryID string
	Amount     decimal.Decimal
	Period     entity.BudgetPeriod
	Spent      decimal.Decimal
}

// SetBudgetsInput represents the input for replacing the budget list.
type SetBudgetsInput struct {
	Budgets []BudgetInput
}

// SetBudgetsUseCase handles replacing the budget list.
type SetBudgetsUseCase struct {
	ledger adapter.Ledger
}

// NewSetBudgetsUseCase creates a new SetBudgetsUseCase instance.
func NewSetBudgetsUseCase(ledger adapter.Ledger) *SetBudgetsUseCase {
	return &SetBudgetsUseCase{
		ledger: ledger,
	}
}

// Execute validates every budget and stores the list as a whole.
func (uc *SetBudgetsUseCase) Execute(ctx context.Context, input SetBudgetsInput) (*ListBudgetsOutput, error) {
	budgets := make([]entity.Budget, 0, len(input.Budgets))
	seen := make(map[string]struct{}, len(input.Budgets))

	for i, in := range input.Budgets {
		if strings.TrimSpace(in.CategoryID) == "" {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionCategory,
				fmt.Sprintf("budget %d: category is required", i),
				domainerror.ErrInvalidTransactionCategory,
			)
		}
		if in.Amount.IsNegative() || in.Spent.IsNegative() {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidBudgetAmount,
				fmt.Sprintf("budget %d: amounts must not be negative", i),
				domainerror.ErrInvalidBudgetAmount,
			)
		}

		id := in.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, dup := seen[id]; dup {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeDuplicateBudget,
				fmt.Sprintf("budget id %q appears more than once", id),
				domainerror.ErrDuplicateBudget,
			)
		}
		seen[id] = struct{}{}

		budgets = append(budgets, entity.Budget{
			ID:         id,
			CategoryID: in.CategoryID,
			Amount:     in.Amount,
			Period:     in.Period,
			Spent:      in.Spent,
		})
	}

	// Period conformance is checked by the ledger.
	if err := uc.ledger.SetBudgets(ctx, budgets); err != nil {
		return nil, err
	}
	return toListOutput(budgets), nil
}

package transaction

import (
	"context"
	"sort"
	"strings"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// TypeFilterAll disables the type filter.
const TypeFilterAll = "all"

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Search string
	Type   string // "all", "income" or "expense"; empty means all
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	ledger adapter.LedgerReader
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(ledger adapter.LedgerReader) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		ledger: ledger,
	}
}

// Execute filters by a case-insensitive search over title and notes and by
// type, then orders the result newest first. Equal dates keep stored order.
func (uc *ListTransactionsUseCase) Execute(_ context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	search := strings.ToLower(strings.TrimSpace(input.Search))

	filtered := make([]entity.Transaction, 0)
	for _, t := range uc.ledger.Transactions() {
		if input.Type != "" && input.Type != TypeFilterAll && string(t.Type) != input.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Notes), search) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	totals := entity.SumTransactions(filtered)
	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(filtered)),
		Totals: TotalsOutput{
			IncomeTotal:  totals.IncomeTotal,
			ExpenseTotal: totals.ExpenseTotal,
			NetTotal:     totals.NetTotal,
		},
	}
	for i, t := range filtered {
		output.Transactions[i] = toOutput(t)
	}

	return output, nil
}

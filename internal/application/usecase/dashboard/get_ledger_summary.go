package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// GetLedgerSummaryOutput represents the all-time totals.
type GetLedgerSummaryOutput struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	FormattedBalance string
	Currency         entity.Currency
	TransactionCount int
}

// GetLedgerSummaryUseCase handles the all-time totals shown on the home screen.
type GetLedgerSummaryUseCase struct {
	ledger adapter.LedgerReader
}

// NewGetLedgerSummaryUseCase creates a new GetLedgerSummaryUseCase instance.
func NewGetLedgerSummaryUseCase(ledger adapter.LedgerReader) *GetLedgerSummaryUseCase {
	return &GetLedgerSummaryUseCase{
		ledger: ledger,
	}
}

// Execute reads the totals from one snapshot so they agree with each other.
func (uc *GetLedgerSummaryUseCase) Execute(_ context.Context) (*GetLedgerSummaryOutput, error) {
	snapshot := uc.ledger.Snapshot()
	totals := entity.SumTransactions(snapshot.Transactions)
	currency := entity.CurrencyOrDefault(snapshot.Preferences.Currency)

	return &GetLedgerSummaryOutput{
		TotalIncome:      totals.IncomeTotal,
		TotalExpenses:    totals.ExpenseTotal,
		Balance:          totals.NetTotal,
		FormattedBalance: currency.FormatAmount(totals.NetTotal),
		Currency:         currency,
		TransactionCount: len(snapshot.Transactions),
	}, nil
}

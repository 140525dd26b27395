package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// GetPeriodSummaryInput represents the input for getting a period summary.
type GetPeriodSummaryInput struct {
	Period TimePeriod
}

// GetPeriodSummaryOutput represents the totals over the window.
type GetPeriodSummaryOutput struct {
	Window           Window
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}

// GetPeriodSummaryUseCase handles income, expense and balance totals over a window.
type GetPeriodSummaryUseCase struct {
	ledger adapter.LedgerReader
	clock  adapter.Clock
}

// NewGetPeriodSummaryUseCase creates a new GetPeriodSummaryUseCase instance.
func NewGetPeriodSummaryUseCase(ledger adapter.LedgerReader, clock adapter.Clock) *GetPeriodSummaryUseCase {
	return &GetPeriodSummaryUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Execute computes the totals for the requested window.
func (uc *GetPeriodSummaryUseCase) Execute(_ context.Context, input GetPeriodSummaryInput) (*GetPeriodSummaryOutput, error) {
	now := uc.clock.Now()
	start := WindowStart(now, input.Period)
	windowed := InWindow(uc.ledger.Transactions(), start)
	totals := entity.SumTransactions(windowed)

	return &GetPeriodSummaryOutput{
		Window:           Window{Period: input.Period, StartDate: start, EndDate: now},
		TotalIncome:      totals.IncomeTotal,
		TotalExpenses:    totals.ExpenseTotal,
		Balance:          totals.NetTotal,
		TransactionCount: len(windowed),
	}, nil
}

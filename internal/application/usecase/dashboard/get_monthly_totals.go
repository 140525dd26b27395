package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// MaxMonthlyPoints caps the number of months returned.
const MaxMonthlyPoints = 6

// GetMonthlyTotalsInput represents the input for getting monthly totals.
type GetMonthlyTotalsInput struct {
	Period TimePeriod
}

// MonthlyTotal holds income and expenses for one calendar month.
type MonthlyTotal struct {
	MonthStart time.Time
	Label      string
	Income     decimal.Decimal
	Expenses   decimal.Decimal
}

// GetMonthlyTotalsOutput represents the output of getting monthly totals.
type GetMonthlyTotalsOutput struct {
	Window Window
	Months []MonthlyTotal
}

// GetMonthlyTotalsUseCase handles per-month income and expense totals.
type GetMonthlyTotalsUseCase struct {
	ledger adapter.LedgerReader
	clock  adapter.Clock
}

// NewGetMonthlyTotalsUseCase creates a new GetMonthlyTotalsUseCase instance.
func NewGetMonthlyTotalsUseCase(ledger adapter.LedgerReader, clock adapter.Clock) *GetMonthlyTotalsUseCase {
	return &GetMonthlyTotalsUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Execute totals the window by calendar month. Only months with at least
// one transaction appear; the latest six are returned in chronological order.
func (uc *GetMonthlyTotalsUseCase) Execute(_ context.Context, input GetMonthlyTotalsInput) (*GetMonthlyTotalsOutput, error) {
	now := uc.clock.Now()
	start := WindowStart(now, input.Period)

	byMonth := make(map[time.Time]*MonthlyTotal)
	for _, t := range InWindow(uc.ledger.Transactions(), start) {
		key := monthStart(t.Date)
		total, ok := byMonth[key]
		if !ok {
			total = &MonthlyTotal{
				MonthStart: key,
				Label:      MonthLabel(key),
				Income:     decimal.Zero,
				Expenses:   decimal.Zero,
			}
			byMonth[key] = total
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			total.Income = total.Income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			total.Expenses = total.Expenses.Add(t.Amount)
		}
	}

	months := make([]MonthlyTotal, 0, len(byMonth))
	for _, total := range byMonth {
		months = append(months, *total)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].MonthStart.Before(months[j].MonthStart)
	})
	if len(months) > MaxMonthlyPoints {
		months = months[len(months)-MaxMonthlyPoints:]
	}

	return &GetMonthlyTotalsOutput{
		Window: Window{Period: input.Period, StartDate: start, EndDate: now},
		Months: months,
	}, nil
}

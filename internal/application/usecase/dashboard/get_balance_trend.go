package dashboard

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
)

// MaxTrendPoints caps the number of days in a balance trend.
const MaxTrendPoints = 7

// GetBalanceTrendInput represents the input for getting the balance trend.
type GetBalanceTrendInput struct {
	Period TimePeriod
}

// BalancePoint is the running balance at the end of one day.
type BalancePoint struct {
	Date    string // YYYY-MM-DD, empty for the placeholder point
	Label   string // day of month
	Balance decimal.Decimal
}

// GetBalanceTrendOutput represents the output of getting the balance trend.
type GetBalanceTrendOutput struct {
	Window Window
	Points []BalancePoint
}

// GetBalanceTrendUseCase handles the daily running balance series.
type GetBalanceTrendUseCase struct {
	ledger adapter.LedgerReader
	clock  adapter.Clock
}

// NewGetBalanceTrendUseCase creates a new GetBalanceTrendUseCase instance.
func NewGetBalanceTrendUseCase(ledger adapter.LedgerReader, clock adapter.Clock) *GetBalanceTrendUseCase {
	return &GetBalanceTrendUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Execute accumulates the window's signed amounts in date order and keeps
// the closing balance of each day. The running balance starts at zero at
// the window start. An empty window yields a single zero point.
func (uc *GetBalanceTrendUseCase) Execute(_ context.Context, input GetBalanceTrendInput) (*GetBalanceTrendOutput, error) {
	now := uc.clock.Now()
	start := WindowStart(now, input.Period)

	windowed := InWindow(uc.ledger.Transactions(), start)
	sort.SliceStable(windowed, func(i, j int) bool {
		return windowed[i].Date.Before(windowed[j].Date)
	})

	points := make([]BalancePoint, 0)
	running := decimal.Zero
	for _, t := range windowed {
		running = running.Add(t.SignedAmount())
		key := dayKey(t.Date)
		if n := len(points); n > 0 && points[n-1].Date == key {
			points[n-1].Balance = running
			continue
		}
		points = append(points, BalancePoint{
			Date:    key,
			Label:   t.Date.Format("2"),
			Balance: running,
		})
	}

	if len(points) > MaxTrendPoints {
		points = points[len(points)-MaxTrendPoints:]
	}
	if len(points) == 0 {
		points = []BalancePoint{{Balance: decimal.Zero}}
	}

	return &GetBalanceTrendOutput{
		Window: Window{Period: input.Period, StartDate: start, EndDate: now},
		Points: points,
	}, nil
}

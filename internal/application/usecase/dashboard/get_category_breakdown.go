package dashboard

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// MaxBreakdownCategories caps the number of categories in a breakdown.
const MaxBreakdownCategories = 6

// GetCategoryBreakdownInput represents the input for getting category breakdown.
type GetCategoryBreakdownInput struct {
	Period TimePeriod
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	CategoryID       string
	CategoryName     string
	CategoryColor    string
	CategoryIcon     string
	Amount           decimal.Decimal
	Percentage       float64
	TransactionCount int
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	Window        Window
	TotalExpenses decimal.Decimal
	Categories    []CategoryBreakdownItem
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	ledger adapter.LedgerReader
	clock  adapter.Clock
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(ledger adapter.LedgerReader, clock adapter.Clock) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		ledger: ledger,
		clock:  clock,
	}
}

// Execute groups the window's expenses by category, largest first.
// Categories missing from the catalog are reported as Unknown.
func (uc *GetCategoryBreakdownUseCase) Execute(_ context.Context, input GetCategoryBreakdownInput) (*GetCategoryBreakdownOutput, error) {
	now := uc.clock.Now()
	start := WindowStart(now, input.Period)

	byCategory := make(map[string]*CategoryBreakdownItem)
	order := make([]string, 0)
	totalExpenses := decimal.Zero

	for _, t := range InWindow(uc.ledger.Transactions(), start) {
		if t.Type != entity.TransactionTypeExpense {
			continue
		}
		totalExpenses = totalExpenses.Add(t.Amount)

		item, ok := byCategory[t.Category]
		if !ok {
			category := entity.ResolveCategory(t.Category)
			item = &CategoryBreakdownItem{
				CategoryID:    t.Category,
				CategoryName:  category.Name,
				CategoryColor: category.Color,
				CategoryIcon:  category.Icon,
				Amount:        decimal.Zero,
			}
			byCategory[t.Category] = item
			order = append(order, t.Category)
		}
		item.Amount = item.Amount.Add(t.Amount)
		item.TransactionCount++
	}

	categories := make([]CategoryBreakdownItem, 0, len(order))
	for _, id := range order {
		item := *byCategory[id]
		if !totalExpenses.IsZero() {
			pct := item.Amount.Mul(decimal.NewFromInt(100)).Div(totalExpenses)
			item.Percentage, _ = pct.Round(2).Float64()
		}
		categories = append(categories, item)
	}

	// Stable so ties keep first-seen order.
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Amount.GreaterThan(categories[j].Amount)
	})
	if len(categories) > MaxBreakdownCategories {
		categories = categories[:MaxBreakdownCategories]
	}

	return &GetCategoryBreakdownOutput{
		Window:        Window{Period: input.Period, StartDate: start, EndDate: now},
		TotalExpenses: totalExpenses,
		Categories:    categories,
	}, nil
}

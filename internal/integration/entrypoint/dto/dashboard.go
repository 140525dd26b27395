package dto

import (
	"github.com/finance-tracker/ewallet/internal/application/usecase/dashboard"
)

// WindowResponse represents the analytics window in responses.
type WindowResponse struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// LedgerSummaryResponse represents the all-time totals.
type LedgerSummaryResponse struct {
	TotalIncome      string           `json:"total_income"`
	TotalExpenses    string           `json:"total_expenses"`
	Balance          string           `json:"balance"`
	FormattedBalance string           `json:"formatted_balance"`
	Currency         CurrencyResponse `json:"currency"`
	TransactionCount int              `json:"transaction_count"`
}

// PeriodSummaryResponse represents the totals over an analytics window.
type PeriodSummaryResponse struct {
	Window           WindowResponse `json:"window"`
	TotalIncome      string         `json:"total_income"`
	TotalExpenses    string         `json:"total_expenses"`
	Balance          string         `json:"balance"`
	TransactionCount int            `json:"transaction_count"`
}

// CategoryBreakdownItemResponse represents one slice of the expense breakdown.
type CategoryBreakdownItemResponse struct {
	CategoryID       string  `json:"category_id"`
	Name             string  `json:"name"`
	Color            string  `json:"color"`
	Icon             string  `json:"icon"`
	Amount           string  `json:"amount"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
}

// CategoryBreakdownResponse represents the expense breakdown by category.
type CategoryBreakdownResponse struct {
	Window        WindowResponse                  `json:"window"`
	TotalExpenses string                          `json:"total_expenses"`
	Categories    []CategoryBreakdownItemResponse `json:"categories"`
}

// MonthlyTotalResponse represents income and expenses of one month.
type MonthlyTotalResponse struct {
	Month    string `json:"month"`
	Label    string `json:"label"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// MonthlyTotalsResponse represents the per-month totals.
type MonthlyTotalsResponse struct {
	Window WindowResponse         `json:"window"`
	Months []MonthlyTotalResponse `json:"months"`
}

// BalancePointResponse represents one point of the balance trend.
type BalancePointResponse struct {
	Date    string `json:"date,omitempty"`
	Label   string `json:"label"`
	Balance string `json:"balance"`
}

// BalanceTrendResponse represents the running balance series.
type BalanceTrendResponse struct {
	Window WindowResponse         `json:"window"`
	Points []BalancePointResponse `json:"points"`
}

func toWindowResponse(w dashboard.Window) WindowResponse {
	return WindowResponse{
		Period:    string(w.Period),
		StartDate: w.StartDate.Format(DateLayout),
		EndDate:   w.EndDate.Format(DateLayout),
	}
}

// ToLedgerSummaryResponse converts a GetLedgerSummaryOutput to a LedgerSummaryResponse DTO.
func ToLedgerSummaryResponse(output *dashboard.GetLedgerSummaryOutput) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		TotalIncome:      output.TotalIncome.String(),
		TotalExpenses:    output.TotalExpenses.String(),
		Balance:          output.Balance.String(),
		FormattedBalance: output.FormattedBalance,
		Currency: CurrencyResponse{
			Code:   output.Currency.Code,
			Symbol: output.Currency.Symbol,
			Name:   output.Currency.Name,
		},
		TransactionCount: output.TransactionCount,
	}
}

// ToPeriodSummaryResponse converts a GetPeriodSummaryOutput to a PeriodSummaryResponse DTO.
func ToPeriodSummaryResponse(output *dashboard.GetPeriodSummaryOutput) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		Window:           toWindowResponse(output.Window),
		TotalIncome:      output.TotalIncome.String(),
		TotalExpenses:    output.TotalExpenses.String(),
		Balance:          output.Balance.String(),
		TransactionCount: output.TransactionCount,
	}
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to a CategoryBreakdownResponse DTO.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryBreakdownItemResponse{
			CategoryID:       c.CategoryID,
			Name:             c.CategoryName,
			Color:            c.CategoryColor,
			Icon:             c.CategoryIcon,
			Amount:           c.Amount.String(),
			Percentage:       c.Percentage,
			TransactionCount: c.TransactionCount,
		}
	}
	return CategoryBreakdownResponse{
		Window:        toWindowResponse(output.Window),
		TotalExpenses: output.TotalExpenses.String(),
		Categories:    categories,
	}
}

// ToMonthlyTotalsResponse converts a GetMonthlyTotalsOutput to a MonthlyTotalsResponse DTO.
func ToMonthlyTotalsResponse(output *dashboard.GetMonthlyTotalsOutput) MonthlyTotalsResponse {
	months := make([]MonthlyTotalResponse, len(output.Months))
	for i, m := range output.Months {
		months[i] = MonthlyTotalResponse{
			Month:    m.MonthStart.Format("2006-01"),
			Label:    m.Label,
			Income:   m.Income.String(),
			Expenses: m.Expenses.String(),
		}
	}
	return MonthlyTotalsResponse{
		Window: toWindowResponse(output.Window),
		Months: months,
	}
}

// ToBalanceTrendResponse converts a GetBalanceTrendOutput to a BalanceTrendResponse DTO.
func ToBalanceTrendResponse(output *dashboard.GetBalanceTrendOutput) BalanceTrendResponse {
	points := make([]BalancePointResponse, len(output.Points))
	for i, p := range output.Points {
		points[i] = BalancePointResponse{
			Date:    p.Date,
			Label:   p.Label,
			Balance: p.Balance.String(),
		}
	}
	return BalanceTrendResponse{
		Window: toWindowResponse(output.Window),
		Points: points,
	}
}

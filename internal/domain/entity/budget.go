package entity

import "github.com/shopspring/decimal"

// BudgetPeriod is the reset period of a budget ceiling.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// IsValid reports whether the period is one of the known periods.
func (p BudgetPeriod) IsValid() bool {
	switch p {
	case BudgetPeriodWeekly, BudgetPeriodMonthly, BudgetPeriodYearly:
		return true
	}
	return false
}

// Budget is a spending ceiling for one category. Spent is populated
// externally; the ledger only stores it.
type Budget struct {
	ID         string
	CategoryID string
	Amount     decimal.Decimal
	Period     BudgetPeriod
	Spent      decimal.Decimal
}

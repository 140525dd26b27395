// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"
	"time"

	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// TimePeriod is the analytics window, counted back from now.
type TimePeriod string

const (
	TimePeriodWeek        TimePeriod = "week"
	TimePeriodMonth       TimePeriod = "month"
	TimePeriodThreeMonths TimePeriod = "3months"
	TimePeriodYear        TimePeriod = "year"
)

// DefaultTimePeriod is used when no period is requested.
const DefaultTimePeriod = TimePeriodMonth

// ParseTimePeriod validates a period name. An empty name selects the default.
func ParseTimePeriod(value string) (TimePeriod, error) {
	switch p := TimePeriod(value); p {
	case "":
		return DefaultTimePeriod, nil
	case TimePeriodWeek, TimePeriodMonth, TimePeriodThreeMonths, TimePeriodYear:
		return p, nil
	default:
		return "", domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTimePeriod,
			fmt.Sprintf("period must be one of week, month, 3months, year; got %q", value),
			domainerror.ErrInvalidTimePeriod,
		)
	}
}

// WindowStart returns the first instant included in the period ending at now.
func WindowStart(now time.Time, period TimePeriod) time.Time {
	switch period {
	case TimePeriodWeek:
		return now.AddDate(0, 0, -7)
	case TimePeriodThreeMonths:
		return now.AddDate(0, -3, 0)
	case TimePeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// InWindow returns the transactions dated at or after start, in stored order.
func InWindow(transactions []entity.Transaction, start time.Time) []entity.Transaction {
	result := make([]entity.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !t.Date.Before(start) {
			result = append(result, t)
		}
	}
	return result
}

// MonthLabel formats the month containing date, e.g. "Jan 25".
func MonthLabel(date time.Time) string {
	return date.Format("Jan 06")
}

// monthStart returns midnight on the first day of the month containing date.
func monthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// dayKey identifies the calendar day of date.
func dayKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Window describes the period an analytics result covers.
type Window struct {
	Period    TimePeriod
	StartDate time.Time
	EndDate   time.Time
}

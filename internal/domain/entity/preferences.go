package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// IsValid reports whether the theme is one of the known themes.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// UserPreferences is the singleton preferences record. It is always
// replaced as a whole.
type UserPreferences struct {
	Currency             string
	Theme                Theme
	BiometricEnabled     bool
	PinEnabled           bool
	NotificationsEnabled bool
	BudgetAlerts         bool
}

// DefaultPreferences returns the preferences of a fresh installation.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Currency:             "USD",
		Theme:                ThemeSystem,
		BiometricEnabled:     false,
		PinEnabled:           false,
		NotificationsEnabled: true,
		BudgetAlerts:         true,
	}
}

// Currency describes a supported display currency.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies is the list of supported display currencies. The first entry
// is the fallback for unknown codes.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "BRL", Symbol: "R$", Name: "Brazilian Real"},
}

// FindCurrency looks up a supported currency by code.
func FindCurrency(code string) (Currency, bool) {
	for _, c := range Currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// CurrencyOrDefault returns the currency for code, falling back to USD.
func CurrencyOrDefault(code string) Currency {
	if c, ok := FindCurrency(code); ok {
		return c
	}
	return Currencies[0]
}

// FormatAmount renders an amount with the currency symbol and two decimals.
func (c Currency) FormatAmount(amount decimal.Decimal) string {
	return fmt.Sprintf("%s%s", c.Symbol, amount.StringFixed(2))
}

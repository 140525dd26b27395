// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents one recorded money movement in the ledger.
type Transaction struct {
	ID        string
	Amount    decimal.Decimal // Always a positive magnitude, the side is given by Type
	Title     string
	Type      TransactionType
	Category  string // Category catalog ID, dangling references are tolerated
	Date      time.Time
	Notes     string
	Synced    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TransactionDraft holds the caller supplied fields of a new transaction.
// Identity and bookkeeping fields are assigned by the ledger store.
type TransactionDraft struct {
	Amount   decimal.Decimal
	Title    string
	Type     TransactionType
	Category string
	Date     time.Time
	Notes    string
}

// NewTransaction creates a new Transaction entity from a draft.
func NewTransaction(id string, draft TransactionDraft, now time.Time) Transaction {
	return Transaction{
		ID:        id,
		Amount:    draft.Amount,
		Title:     draft.Title,
		Type:      draft.Type,
		Category:  draft.Category,
		Date:      draft.Date,
		Notes:     draft.Notes,
		Synced:    false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SignedAmount returns the amount with expenses negated.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionWithCategory represents a transaction with its resolved category.
type TransactionWithCategory struct {
	Transaction Transaction
	Category    Category
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// SumTransactions aggregates income, expense and net totals.
func SumTransactions(transactions []Transaction) TransactionTotals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case TransactionTypeIncome:
			income = income.Add(t.Amount)
		case TransactionTypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return TransactionTotals{
		IncomeTotal:  income,
		ExpenseTotal: expense,
		NetTotal:     income.Sub(expense),
	}
}

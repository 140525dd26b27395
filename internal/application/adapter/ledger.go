// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/domain/entity"
)

// LedgerReader is the read side of the ledger store.
type LedgerReader interface {
	Transactions() []entity.Transaction
	Transaction(id string) (entity.Transaction, bool)
	Budgets() []entity.Budget
	Preferences() entity.UserPreferences
	IsOnboarded() bool
	SyncQueue() []string
	IsOnline() bool
	Snapshot() entity.LedgerSnapshot
	TotalIncome() decimal.Decimal
	TotalExpenses() decimal.Decimal
	Balance() decimal.Decimal
}

// Ledger is the full ledger store surface used by use cases and controllers.
type Ledger interface {
	LedgerReader

	ReplaceTransactions(ctx context.Context, transactions []entity.Transaction) error
	AddTransaction(ctx context.Context, draft entity.TransactionDraft) (entity.Transaction, error)
	UpdateTransaction(ctx context.Context, transaction entity.Transaction) (entity.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	SetPreferences(ctx context.Context, preferences entity.UserPreferences) error
	SetBudgets(ctx context.Context, budgets []entity.Budget) error
	SetOnboarded(ctx context.Context, onboarded bool) error
	RemoveFromSyncQueue(ctx context.Context, id string) error
	SetOnline(ctx context.Context, online bool) error
}

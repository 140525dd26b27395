package entity

// LedgerSnapshot is a read-only copy of the application state. Mutating a
// snapshot never affects the ledger it was taken from.
type LedgerSnapshot struct {
	Transactions []Transaction
	Budgets      []Budget
	Preferences  UserPreferences
	IsOnboarded  bool
	SyncQueue    []string
	IsOnline     bool
}

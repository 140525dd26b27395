// Package ledger implements the transaction ledger store: the single owner
// of transactions, budgets, preferences and the onboarding flag, with
// write-behind persistence of every state slice.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// Operation names reported to metrics and logs.
const (
	OpReplaceTransactions = "replace_transactions"
	OpAddTransaction      = "add_transaction"
	OpUpdateTransaction   = "update_transaction"
	OpDeleteTransaction   = "delete_transaction"
	OpSetPreferences      = "set_preferences"
	OpSetBudgets          = "set_budgets"
	OpSetOnboarded        = "set_onboarded"
	OpRemoveFromSyncQueue = "remove_from_sync_queue"
	OpSetOnline           = "set_online"
)

// state is the aggregate root. It is only touched with Store.mu held.
type state struct {
	transactions []entity.Transaction
	budgets      []entity.Budget
	preferences  entity.UserPreferences
	isOnboarded  bool
	syncQueue    []string
	isOnline     bool
}

func defaultState() state {
	return state{
		transactions: []entity.Transaction{},
		budgets:      []entity.Budget{},
		preferences:  entity.DefaultPreferences(),
		isOnboarded:  false,
		syncQueue:    []string{},
		isOnline:     true,
	}
}

// Store is the ledger store. All mutations go through its named operations;
// each operation is atomic and schedules a durable write of the slices it
// changed without waiting for it.
//
// The store loads its state in the background after construction. Every
// operation issued before the load completes waits for it.
type Store struct {
	kv      adapter.KeyValueStore
	clock   adapter.Clock
	ids     adapter.IDGenerator
	metrics adapter.LedgerMetrics
	opts    Options

	mu      sync.Mutex
	state   state
	closed  bool
	writers map[Slice]*sliceWriter

	ready chan struct{}
}

var _ adapter.Ledger = (*Store)(nil)

// NewStore creates a ledger store backed by kv and starts loading the
// persisted state.
func NewStore(kv adapter.KeyValueStore, opts Options) *Store {
	opts = opts.withDefaults()

	s := &Store{
		kv:      kv,
		clock:   opts.Clock,
		ids:     opts.IDGenerator,
		metrics: opts.Metrics,
		opts:    opts,
		state:   defaultState(),
		writers: make(map[Slice]*sliceWriter, len(AllSlices)),
		ready:   make(chan struct{}),
	}

	for _, slice := range AllSlices {
		w := newSliceWriter(slice, kv, opts.Metrics, opts.WriteTimeout, opts.RetryInterval)
		w.start()
		s.writers[slice] = w
	}

	go s.load()

	return s
}

// Ready returns a channel closed once the persisted state has been loaded.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady blocks until the persisted state has been loaded or ctx ends.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// lockForMutation waits for readiness and acquires the state lock.
// On success the caller must unlock s.mu.
func (s *Store) lockForMutation(ctx context.Context) error {
	if err := s.WaitReady(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerClosed,
			"ledger is closed",
			domainerror.ErrLedgerClosed,
		)
	}
	return nil
}

// lockForRead waits for readiness and acquires the state lock.
func (s *Store) lockForRead() {
	<-s.ready
	s.mu.Lock()
}

// ReplaceTransactions overwrites the whole transaction collection verbatim.
// The contents are not validated; callers importing data validate first.
func (s *Store) ReplaceTransactions(ctx context.Context, transactions []entity.Transaction) error {
	if err := s.lockForMutation(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.state.transactions = slices.Clone(transactions)
	if s.state.transactions == nil {
		s.state.transactions = []entity.Transaction{}
	}
	s.schedule(SliceTransactions)
	s.applied(OpReplaceTransactions, "count", len(transactions))
	return nil
}

// AddTransaction records a new transaction from draft. It assigns a fresh ID,
// stamps the bookkeeping fields, puts the record first in stored order and
// enqueues its ID for sync.
func (s *Store) AddTransaction(ctx context.Context, draft entity.TransactionDraft) (entity.Transaction, error) {
	if err := validateFields(draft.Amount, draft.Title, draft.Category, draft.Type); err != nil {
		s.metrics.MutationRejected(OpAddTransaction)
		return entity.Transaction{}, err
	}

	if err := s.lockForMutation(ctx); err != nil {
		return entity.Transaction{}, err
	}
	defer s.mu.Unlock()

	id, err := s.newID()
	if err != nil {
		s.metrics.MutationRejected(OpAddTransaction)
		return entity.Transaction{}, err
	}

	transaction := entity.NewTransaction(id, draft, s.clock.Now())
	s.state.transactions = slices.Insert(s.state.transactions, 0, transaction)
	s.enqueueSync(id)

	s.schedule(SliceTransactions, SliceSyncQueue)
	s.applied(OpAddTransaction, "transaction_id", id)
	return transaction, nil
}

// UpdateTransaction replaces the stored transaction with the same ID in
// place. The stored creation time is kept, UpdatedAt is stamped, the record
// is marked unsynced and its ID is enqueued for sync.
func (s *Store) UpdateTransaction(ctx context.Context, transaction entity.Transaction) (entity.Transaction, error) {
	if err := s.lockForMutation(ctx); err != nil {
		return entity.Transaction{}, err
	}
	defer s.mu.Unlock()

	idx := s.indexOf(transaction.ID)
	if idx < 0 {
		s.metrics.MutationRejected(OpUpdateTransaction)
		return entity.Transaction{}, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			fmt.Sprintf("transaction %q not found", transaction.ID),
			domainerror.ErrTransactionNotFound,
		)
	}

	if err := validateFields(transaction.Amount, transaction.Title, transaction.Category, transaction.Type); err != nil {
		s.metrics.MutationRejected(OpUpdateTransaction)
		return entity.Transaction{}, err
	}

	transaction.CreatedAt = s.state.transactions[idx].CreatedAt
	transaction.UpdatedAt = s.clock.Now()
	transaction.Synced = false
	s.state.transactions[idx] = transaction
	s.enqueueSync(transaction.ID)

	s.schedule(SliceTransactions, SliceSyncQueue)
	s.applied(OpUpdateTransaction, "transaction_id", transaction.ID)
	return transaction, nil
}

// DeleteTransaction removes the transaction with id. Deleting a missing ID
// is a no-op. The ID is enqueued for sync either way.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.lockForMutation(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	removed := false
	if idx := s.indexOf(id); idx >= 0 {
		s.state.transactions = slices.Delete(s.state.transactions, idx, idx+1)
		removed = true
		s.schedule(SliceTransactions)
	}
	s.enqueueSync(id)

	s.schedule(SliceSyncQueue)
	s.applied(OpDeleteTransaction, "transaction_id", id, "removed", removed)
	return nil
}

// SetPreferences replaces the preferences record as a whole.
func (s *Store) SetPreferences(ctx context.Context, preferences entity.UserPreferences) error {
	if !preferences.Theme.IsValid() {
		s.metrics.MutationRejected(OpSetPreferences)
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTheme,
			"theme must be 'light', 'dark' or 'system'",
			domainerror.ErrInvalidTheme,
		)
	}

	if err := s.lockForMutation(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.state.preferences = preferences
	s.schedule(SlicePreferences)
	s.applied(OpSetPreferences)
	return nil
}

// SetBudgets replaces the budget list as a whole.
func (s *Store) SetBudgets(ctx context.Context, budgets []entity.Budget) error {
	for _, b := range budgets {
		if !b.Period.IsValid() {
			s.metrics.MutationRejected(OpSetBudgets)
			return domainerror.NewLedgerError(
				domainerror.ErrCodeInvalidBudgetPeriod,
				fmt.Sprintf("budget %q: period must be 'weekly', 'monthly' or 'yearly'", b.ID),
				domainerror.ErrInvalidBudgetPeriod,
			)
		}
	}

	if err := s.lockForMutation(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.state.budgets = slices.Clone(budgets)
	if s.state.budgets == nil {
		s.state.budgets = []entity.Budget{}
	}
	s.schedule(SliceBudgets)
	s.applied(OpSetBudgets, "count", len(budgets))
	return nil
}

// SetOnboarded sets the onboarding flag.
func (s *Store) SetOnboarded(ctx context.Context, onboarded bool) error {
	if err := s.lockForMutation(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.state.isOnboarded = onboarded
	s.schedule(SliceOnboarded)
	s.applied(OpSetOnboarded, "onboarded", onboarded)
	return nil
}

// RemoveFromSyncQueue drops id from the pending sync set. Nothing in this
// process reconciles with a remote system; the call exists for a future
// sync worker.
func (s *Store) RemoveFromSyncQueue(ctx context.Context, id string) error {
	if err := s.lockForMutation(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if idx := slices.Index(s.state.syncQueue, id); idx >= 0 {
		s.state.syncQueue = slices.Delete(s.state.syncQueue, idx, idx+1)
		s.schedule(SliceSyncQueue)
	}
	s.applied(OpRemoveFromSyncQueue, "transaction_id", id)
	return nil
}

// SetOnline records the connectivity flag. It is not persisted.
func (s *Store) SetOnline(ctx context.Context, online bool) error {
	if err := s.lockForMutation(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	s.state.isOnline = online
	s.applied(OpSetOnline, "online", online)
	return nil
}

// Transactions returns a copy of the collection in stored order.
func (s *Store) Transactions() []entity.Transaction {
	s.lockForRead()
	defer s.mu.Unlock()
	return slices.Clone(s.state.transactions)
}

// Transaction returns the transaction with id.
func (s *Store) Transaction(id string) (entity.Transaction, bool) {
	s.lockForRead()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.state.transactions[idx], true
	}
	return entity.Transaction{}, false
}

// Budgets returns a copy of the budget list.
func (s *Store) Budgets() []entity.Budget {
	s.lockForRead()
	defer s.mu.Unlock()
	return slices.Clone(s.state.budgets)
}

// Preferences returns the current preferences.
func (s *Store) Preferences() entity.UserPreferences {
	s.lockForRead()
	defer s.mu.Unlock()
	return s.state.preferences
}

// IsOnboarded returns the onboarding flag.
func (s *Store) IsOnboarded() bool {
	s.lockForRead()
	defer s.mu.Unlock()
	return s.state.isOnboarded
}

// SyncQueue returns a copy of the pending sync IDs in enqueue order.
func (s *Store) SyncQueue() []string {
	s.lockForRead()
	defer s.mu.Unlock()
	return slices.Clone(s.state.syncQueue)
}

// IsOnline returns the connectivity flag.
func (s *Store) IsOnline() bool {
	s.lockForRead()
	defer s.mu.Unlock()
	return s.state.isOnline
}

// Snapshot returns a consistent copy of the whole state.
func (s *Store) Snapshot() entity.LedgerSnapshot {
	s.lockForRead()
	defer s.mu.Unlock()
	return entity.LedgerSnapshot{
		Transactions: slices.Clone(s.state.transactions),
		Budgets:      slices.Clone(s.state.budgets),
		Preferences:  s.state.preferences,
		IsOnboarded:  s.state.isOnboarded,
		SyncQueue:    slices.Clone(s.state.syncQueue),
		IsOnline:     s.state.isOnline,
	}
}

// TotalIncome sums the amounts of all income transactions.
func (s *Store) TotalIncome() decimal.Decimal {
	return s.sumByType(entity.TransactionTypeIncome)
}

// TotalExpenses sums the amounts of all expense transactions.
func (s *Store) TotalExpenses() decimal.Decimal {
	return s.sumByType(entity.TransactionTypeExpense)
}

// Balance is TotalIncome minus TotalExpenses.
func (s *Store) Balance() decimal.Decimal {
	return s.TotalIncome().Sub(s.TotalExpenses())
}

func (s *Store) sumByType(t entity.TransactionType) decimal.Decimal {
	s.lockForRead()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, txn := range s.state.transactions {
		if txn.Type == t {
			total = total.Add(txn.Amount)
		}
	}
	return total
}

// Flush waits until every slice has durably written its latest snapshot.
func (s *Store) Flush(ctx context.Context) error {
	if err := s.WaitReady(ctx); err != nil {
		return err
	}
	var errs []error
	for _, slice := range AllSlices {
		if err := s.writers[slice].flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dirty reports whether any slice has a snapshot that is not durable yet.
func (s *Store) Dirty() bool {
	for _, slice := range AllSlices {
		if s.writers[slice].dirty() {
			return true
		}
	}
	return false
}

// Close rejects further mutations, flushes pending writes and stops the
// slice writers. The in-memory state stays readable.
func (s *Store) Close(ctx context.Context) error {
	if err := s.WaitReady(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.Flush(ctx)
	for _, slice := range AllSlices {
		s.writers[slice].close()
	}
	if err != nil {
		slog.Error("Ledger closed with unflushed slices", "error", err)
		return fmt.Errorf("failed to flush ledger: %w", err)
	}
	slog.Info("Ledger closed")
	return nil
}

// schedule hands an immutable copy of each slice to its writer.
// Must be called with s.mu held so submissions follow mutation order.
func (s *Store) schedule(changed ...Slice) {
	for _, slice := range changed {
		var encode encodeFunc
		switch slice {
		case SliceTransactions:
			transactions := slices.Clone(s.state.transactions)
			encode = func() (string, error) { return EncodeTransactions(transactions) }
		case SlicePreferences:
			preferences := s.state.preferences
			encode = func() (string, error) { return EncodePreferences(preferences) }
		case SliceBudgets:
			budgets := slices.Clone(s.state.budgets)
			encode = func() (string, error) { return EncodeBudgets(budgets) }
		case SliceOnboarded:
			onboarded := s.state.isOnboarded
			encode = func() (string, error) { return EncodeOnboarded(onboarded) }
		case SliceSyncQueue:
			queue := slices.Clone(s.state.syncQueue)
			encode = func() (string, error) { return EncodeSyncQueue(queue) }
		default:
			continue
		}
		s.writers[slice].submit(encode)
	}
}

// enqueueSync adds id to the sync queue unless it is already pending.
func (s *Store) enqueueSync(id string) {
	if !slices.Contains(s.state.syncQueue, id) {
		s.state.syncQueue = append(s.state.syncQueue, id)
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.state.transactions, func(t entity.Transaction) bool {
		return t.ID == id
	})
}

func (s *Store) newID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.ids.NewID()
		if id != "" && s.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to allocate a unique transaction id after %d attempts", maxIDAttempts)
}

func (s *Store) applied(operation string, args ...any) {
	s.metrics.MutationApplied(operation)
	slog.Debug("Ledger mutation applied", append([]any{"operation", operation}, args...)...)
}

// validateFields enforces the invariants every stored transaction created
// or edited through the store satisfies.
func validateFields(amount decimal.Decimal, title, category string, t entity.TransactionType) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be a positive number",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	if strings.TrimSpace(title) == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionTitle,
			"title must not be empty",
			domainerror.ErrInvalidTransactionTitle,
		)
	}
	if strings.TrimSpace(category) == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionCategory,
			"category must not be empty",
			domainerror.ErrInvalidTransactionCategory,
		)
	}
	if !t.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

// ValidateTransaction checks a complete record the way the store checks
// edits. Importers run it before ReplaceTransactions.
func ValidateTransaction(t entity.Transaction) error {
	if strings.TrimSpace(t.ID) == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionID,
			"transaction id must not be empty",
			domainerror.ErrInvalidTransactionID,
		)
	}
	return validateFields(t.Amount, t.Title, t.Category, t.Type)
}

package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

type testLedger struct {
	store   *Store
	kv      *fakeKV
	clock   *fakeClock
	metrics *countingMetrics
}

func newTestLedger(t *testing.T, kv *fakeKV, opts Options) *testLedger {
	t.Helper()

	clock := newFakeClock()
	metrics := newCountingMetrics()
	if opts.Clock == nil {
		opts.Clock = clock
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = &sequenceIDs{}
	}
	opts.Metrics = metrics
	if opts.RetryInterval == 0 {
		opts.RetryInterval = 20 * time.Millisecond
	}

	store := NewStore(kv, opts)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = store.Close(ctx)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, store.WaitReady(ctx))

	return &testLedger{store: store, kv: kv, clock: clock, metrics: metrics}
}

func draft(title string, amount int64, t entity.TransactionType, category string) entity.TransactionDraft {
	return entity.TransactionDraft{
		Amount:   decimal.NewFromInt(amount),
		Title:    title,
		Type:     t,
		Category: category,
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func assertSameTransactions(t *testing.T, expected, actual []entity.Transaction) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		e, a := expected[i], actual[i]
		assert.Equal(t, e.ID, a.ID, "id at %d", i)
		assert.True(t, e.Amount.Equal(a.Amount), "amount at %d: %s != %s", i, e.Amount, a.Amount)
		assert.Equal(t, e.Title, a.Title)
		assert.Equal(t, e.Type, a.Type)
		assert.Equal(t, e.Category, a.Category)
		assert.Equal(t, e.Notes, a.Notes)
		assert.Equal(t, e.Synced, a.Synced)
		assert.True(t, e.Date.Equal(a.Date), "date at %d", i)
		assert.True(t, e.CreatedAt.Equal(a.CreatedAt), "createdAt at %d", i)
		assert.True(t, e.UpdatedAt.Equal(a.UpdatedAt), "updatedAt at %d", i)
	}
}

func flush(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

func TestStore_AddTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a valid draft first in order", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{})

		first, err := l.store.AddTransaction(ctx, draft("Coffee", 50, entity.TransactionTypeExpense, "1"))
		require.NoError(t, err)
		l.clock.Advance(time.Minute)
		second, err := l.store.AddTransaction(ctx, draft("Paycheck", 1000, entity.TransactionTypeIncome, "9"))
		require.NoError(t, err)

		assert.Equal(t, "txn-1", first.ID)
		assert.False(t, first.Synced)
		assert.Equal(t, first.CreatedAt, first.UpdatedAt)
		assert.True(t, second.CreatedAt.After(first.CreatedAt))

		transactions := l.store.Transactions()
		require.Len(t, transactions, 2)
		assert.Equal(t, second.ID, transactions[0].ID)
		assert.Equal(t, first.ID, transactions[1].ID)
		assert.Equal(t, []string{first.ID, second.ID}, l.store.SyncQueue())
		assert.Equal(t, 2, l.metrics.count(l.metrics.applied, OpAddTransaction))
	})

	t.Run("rejects invalid drafts without effect", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{})
		_, err := l.store.AddTransaction(ctx, draft("Lunch", 12, entity.TransactionTypeExpense, "1"))
		require.NoError(t, err)

		tests := []struct {
			name     string
			draft    entity.TransactionDraft
			sentinel error
			code     domainerror.TransactionErrorCode
		}{
			{"zero amount", draft("Coffee", 0, entity.TransactionTypeExpense, "1"), domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
			{"negative amount", draft("Coffee", -5, entity.TransactionTypeExpense, "1"), domainerror.ErrInvalidTransactionAmount, domainerror.ErrCodeInvalidTransactionAmount},
			{"blank title", draft("   ", 5, entity.TransactionTypeExpense, "1"), domainerror.ErrInvalidTransactionTitle, domainerror.ErrCodeInvalidTransactionTitle},
			{"empty category", draft("Coffee", 5, entity.TransactionTypeExpense, ""), domainerror.ErrInvalidTransactionCategory, domainerror.ErrCodeInvalidTransactionCategory},
			{"unknown type", draft("Coffee", 5, entity.TransactionType("transfer"), "1"), domainerror.ErrInvalidTransactionType, domainerror.ErrCodeInvalidTransactionType},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				before := l.store.Transactions()

				_, err := l.store.AddTransaction(ctx, tt.draft)

				require.ErrorIs(t, err, tt.sentinel)
				var txnErr *domainerror.TransactionError
				require.ErrorAs(t, err, &txnErr)
				assert.Equal(t, tt.code, txnErr.Code)
				assert.True(t, domainerror.IsValidationError(err))
				assertSameTransactions(t, before, l.store.Transactions())
				assert.Len(t, l.store.SyncQueue(), 1)
			})
		}
		assert.Equal(t, len(tests), l.metrics.count(l.metrics.rejected, OpAddTransaction))
	})

	t.Run("generated ids are unique under concurrency", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{IDGenerator: uuidGenerator{}})

		const n = 200
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := l.store.AddTransaction(ctx, draft("Snack", 3, entity.TransactionTypeExpense, "1"))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		seen := map[string]bool{}
		for _, txn := range l.store.Transactions() {
			assert.False(t, seen[txn.ID], "duplicate id %s", txn.ID)
			seen[txn.ID] = true
		}
		assert.Len(t, seen, n)
	})

	t.Run("regenerates an id that is already taken", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{IDGenerator: &fixedIDs{ids: []string{"a", "a", "b"}}})

		first, err := l.store.AddTransaction(ctx, draft("One", 1, entity.TransactionTypeExpense, "1"))
		require.NoError(t, err)
		second, err := l.store.AddTransaction(ctx, draft("Two", 2, entity.TransactionTypeExpense, "1"))
		require.NoError(t, err)

		assert.Equal(t, "a", first.ID)
		assert.Equal(t, "b", second.ID)
	})

	t.Run("fails when no free id can be generated", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{IDGenerator: &fixedIDs{ids: []string{"same"}}})

		_, err := l.store.AddTransaction(ctx, draft("One", 1, entity.TransactionTypeExpense, "1"))
		require.NoError(t, err)
		_, err = l.store.AddTransaction(ctx, draft("Two", 2, entity.TransactionTypeExpense, "1"))
		require.Error(t, err)
		assert.Len(t, l.store.Transactions(), 1)
	})
}

func TestStore_UpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("absent id is not found and changes nothing", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{})
		_, err := l.store.AddTransaction(ctx, draft("Coffee", 50, entity.TransactionTypeExpense, "1"))
		require.NoError(t, err)
		before := l.store.Transactions()

		_, err = l.store.UpdateTransaction(ctx, entity.Transaction{
			ID: "missing", Amount: decimal.NewFromInt(1), Title: "x", Type: entity.TransactionTypeExpense, Category: "1",
		})

		require.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
		var txnErr *domainerror.TransactionError
		require.ErrorAs(t, err, &txnErr)
		assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnErr.Code)
		assert.False(t, domainerror.IsValidationError(err))
		assertSameTransactions(t, before, l.store.Transactions())
	})

	t.Run("replaces only the target record in place", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{})
		a, err := l.store.AddTransaction(ctx, draft("A", 10, entity.TransactionTypeExpense, "1"))
		require.NoError(t, err)
		b, err := l.store.AddTransaction(ctx, draft("B", 20, entity.TransactionTypeExpense, "2"))
		require.NoError(t, err)
		c, err := l.store.AddTransaction(ctx, draft("C", 30, entity.TransactionTypeIncome, "9"))
		require.NoError(t, err)
		before := l.store.Transactions()

		l.clock.Advance(time.Hour)
		edit := b
		edit.Title = "B edited"
		edit.Amount = decimal.NewFromInt(25)
		edit.Synced = true
		edit.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

		updated, err := l.store.UpdateTransaction(ctx, edit)
		require.NoError(t, err)

		assert.Equal(t, "B edited", updated.Title)
		assert.False(t, updated.Synced)
		assert.True(t, updated.CreatedAt.Equal(b.CreatedAt))
		assert.True(t, updated.UpdatedAt.Equal(l.clock.Now()))

		after := l.store.Transactions()
		require.Len(t, after, 3)
		assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{after[0].ID, after[1].ID, after[2].ID})
		assertSameTransactions(t, []entity.Transaction{before[0]}, []entity.Transaction{after[0]})
		assertSameTransactions(t, []entity.Transaction{before[2]}, []entity.Transaction{after[2]})
		assertSameTransactions(t, []entity.Transaction{updated}, []entity.Transaction{after[1]})

		// b was already pending, so the queue does not grow.
		assert.Equal(t, []string{a.ID, b.ID, c.ID}, l.store.SyncQueue())
	})

	t.Run("rejects an invalid edit", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{})
		a, err := l.store.AddTransaction(ctx, draft("A", 10, entity.TransactionTypeExpense, "1"))
		require.NoError(t, err)

		edit := a
		edit.Amount = decimal.Zero
		_, err = l.store.UpdateTransaction(ctx, edit)

		require.ErrorIs(t, err, domainerror.ErrInvalidTransactionAmount)
		assertSameTransactions(t, []entity.Transaction{a}, l.store.Transactions())
	})
}

func TestStore_DeleteTransaction(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newFakeKV(), Options{})

	coffee, err := l.store.AddTransaction(ctx, draft("Coffee", 50, entity.TransactionTypeExpense, "1"))
	require.NoError(t, err)
	require.NoError(t, l.store.RemoveFromSyncQueue(ctx, coffee.ID))

	require.NoError(t, l.store.DeleteTransaction(ctx, coffee.ID))
	require.NoError(t, l.store.DeleteTransaction(ctx, coffee.ID))
	require.NoError(t, l.store.DeleteTransaction(ctx, "never-existed"))

	assert.Empty(t, l.store.Transactions())
	assert.Equal(t, []string{coffee.ID, "never-existed"}, l.store.SyncQueue())
}

func TestStore_Totals(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newFakeKV(), Options{})

	assert.True(t, l.store.Balance().IsZero())

	amounts := []struct {
		amount string
		t      entity.TransactionType
	}{
		{"12.35", entity.TransactionTypeExpense},
		{"1000", entity.TransactionTypeIncome},
		{"0.10", entity.TransactionTypeExpense},
		{"0.20", entity.TransactionTypeExpense},
		{"49.99", entity.TransactionTypeIncome},
	}
	for _, a := range amounts {
		d := draft("Item", 1, a.t, "1")
		d.Amount = decimal.RequireFromString(a.amount)
		_, err := l.store.AddTransaction(ctx, d)
		require.NoError(t, err)
	}

	income := l.store.TotalIncome()
	expenses := l.store.TotalExpenses()
	totals := entity.SumTransactions(l.store.Transactions())

	assert.Equal(t, "1049.99", income.String())
	assert.Equal(t, "12.65", expenses.String())
	assert.True(t, l.store.Balance().Equal(income.Sub(expenses)))
	assert.True(t, totals.NetTotal.Equal(l.store.Balance()))
}

func TestStore_EndToEnd(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newFakeKV(), Options{})

	coffee, err := l.store.AddTransaction(ctx, draft("Coffee", 50, entity.TransactionTypeExpense, "1"))
	require.NoError(t, err)
	assert.Equal(t, "-50", l.store.Balance().String())

	_, err = l.store.AddTransaction(ctx, draft("Paycheck", 1000, entity.TransactionTypeIncome, "9"))
	require.NoError(t, err)
	assert.Equal(t, "950", l.store.Balance().String())

	require.NoError(t, l.store.DeleteTransaction(ctx, coffee.ID))
	assert.Equal(t, "1000", l.store.Balance().String())
}

func TestStore_ReplaceTransactions(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newFakeKV(), Options{})

	verbatim := []entity.Transaction{
		{ID: "x", Amount: decimal.Zero, Title: "", Type: entity.TransactionTypeExpense, Category: "zz"},
		{ID: "y", Amount: decimal.NewFromInt(7), Title: "Seven", Type: entity.TransactionTypeIncome, Category: "9", Synced: true},
	}
	require.NoError(t, l.store.ReplaceTransactions(ctx, verbatim))
	assertSameTransactions(t, verbatim, l.store.Transactions())
	assert.Empty(t, l.store.SyncQueue())

	require.NoError(t, l.store.ReplaceTransactions(ctx, nil))
	assert.NotNil(t, l.store.Transactions())
	assert.Empty(t, l.store.Transactions())
}

func TestStore_PreferencesBudgetsAndFlags(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t, newFakeKV(), Options{})

	assert.Equal(t, entity.DefaultPreferences(), l.store.Preferences())
	assert.False(t, l.store.IsOnboarded())
	assert.True(t, l.store.IsOnline())

	t.Run("SetPreferences rejects an unknown theme", func(t *testing.T) {
		prefs := entity.DefaultPreferences()
		prefs.Theme = "sepia"
		err := l.store.SetPreferences(ctx, prefs)
		require.ErrorIs(t, err, domainerror.ErrInvalidTheme)
		assert.Equal(t, entity.DefaultPreferences(), l.store.Preferences())
	})

	t.Run("SetPreferences replaces the record", func(t *testing.T) {
		prefs := entity.DefaultPreferences()
		prefs.Currency = "EUR"
		prefs.Theme = entity.ThemeDark
		require.NoError(t, l.store.SetPreferences(ctx, prefs))
		assert.Equal(t, prefs, l.store.Preferences())
	})

	t.Run("SetBudgets rejects an unknown period", func(t *testing.T) {
		err := l.store.SetBudgets(ctx, []entity.Budget{{ID: "b1", CategoryID: "1", Amount: decimal.NewFromInt(100), Period: "daily"}})
		var ledgerErr *domainerror.LedgerError
		require.ErrorAs(t, err, &ledgerErr)
		assert.Equal(t, domainerror.ErrCodeInvalidBudgetPeriod, ledgerErr.Code)
		assert.Empty(t, l.store.Budgets())
	})

	t.Run("SetBudgets replaces the list", func(t *testing.T) {
		budgets := []entity.Budget{{ID: "b1", CategoryID: "1", Amount: decimal.NewFromInt(100), Period: entity.BudgetPeriodMonthly}}
		require.NoError(t, l.store.SetBudgets(ctx, budgets))
		assert.Len(t, l.store.Budgets(), 1)
	})

	t.Run("onboarding flag toggles both ways", func(t *testing.T) {
		require.NoError(t, l.store.SetOnboarded(ctx, true))
		assert.True(t, l.store.IsOnboarded())
		require.NoError(t, l.store.SetOnboarded(ctx, false))
		assert.False(t, l.store.IsOnboarded())
	})

	t.Run("online flag stays in memory", func(t *testing.T) {
		require.NoError(t, l.store.SetOnline(ctx, false))
		assert.False(t, l.store.IsOnline())
		flush(t, l.store)
		for _, slice := range AllSlices {
			v, _ := l.kv.value(string(slice))
			assert.NotContains(t, v, "isOnline")
		}
	})
}

func TestStore_PersistAndReload(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	first := newTestLedger(t, kv, Options{})

	coffee := draft("Coffee", 50, entity.TransactionTypeExpense, "1")
	coffee.Notes = "oat milk"
	coffee.Amount = decimal.RequireFromString("4.75")
	_, err := first.store.AddTransaction(ctx, coffee)
	require.NoError(t, err)
	first.clock.Advance(1500 * time.Millisecond)
	_, err = first.store.AddTransaction(ctx, draft("Paycheck", 1000, entity.TransactionTypeIncome, "9"))
	require.NoError(t, err)

	prefs := entity.DefaultPreferences()
	prefs.Currency = "GBP"
	require.NoError(t, first.store.SetPreferences(ctx, prefs))
	require.NoError(t, first.store.SetBudgets(ctx, []entity.Budget{{
		ID: "b1", CategoryID: "1", Amount: decimal.NewFromInt(200), Period: entity.BudgetPeriodWeekly, Spent: decimal.RequireFromString("4.75"),
	}}))
	require.NoError(t, first.store.SetOnboarded(ctx, true))
	flush(t, first.store)
	assert.False(t, first.store.Dirty())

	second := newTestLedger(t, kv, Options{})

	assertSameTransactions(t, first.store.Transactions(), second.store.Transactions())
	assert.Equal(t, prefs, second.store.Preferences())
	assert.True(t, second.store.IsOnboarded())
	assert.Equal(t, first.store.SyncQueue(), second.store.SyncQueue())
	require.Len(t, second.store.Budgets(), 1)
	assert.True(t, second.store.Budgets()[0].Spent.Equal(decimal.RequireFromString("4.75")))
	assert.True(t, second.store.IsOnline())
}

func TestStore_Load(t *testing.T) {
	validTransactions, err := EncodeTransactions([]entity.Transaction{{
		ID: "keep", Amount: decimal.NewFromInt(5), Title: "Kept", Type: entity.TransactionTypeExpense, Category: "1",
		Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	t.Run("corrupt budgets slot leaves the other slices intact", func(t *testing.T) {
		kv := newFakeKV()
		kv.put(string(SliceTransactions), validTransactions)
		kv.put(string(SlicePreferences), `{"currency":"JPY","theme":"dark"}`)
		kv.put(string(SliceOnboarded), `true`)
		kv.put(string(SliceBudgets), `{not json`)

		l := newTestLedger(t, kv, Options{})

		assert.Empty(t, l.store.Budgets())
		require.Len(t, l.store.Transactions(), 1)
		assert.Equal(t, "keep", l.store.Transactions()[0].ID)
		assert.Equal(t, "JPY", l.store.Preferences().Currency)
		assert.Equal(t, entity.ThemeDark, l.store.Preferences().Theme)
		// Fields missing from the payload keep their defaults.
		assert.True(t, l.store.Preferences().NotificationsEnabled)
		assert.True(t, l.store.IsOnboarded())
		assert.Equal(t, 1, l.metrics.count(l.metrics.loadFail, string(SliceBudgets)))
		assert.Equal(t, 0, l.metrics.count(l.metrics.loadFail, string(SliceTransactions)))
	})

	t.Run("malformed records are skipped", func(t *testing.T) {
		kv := newFakeKV()
		kv.put(string(SliceTransactions), `[
			{"id":"good","amount":10,"title":"Good","type":"income","category":"9","date":"2025-01-02","synced":false,"createdAt":"2025-01-02T10:00:00Z","updatedAt":"2025-01-02T10:00:00Z"},
			{"id":"bad-date","amount":10,"title":"Bad","type":"income","category":"9","date":"yesterday","synced":false,"createdAt":"2025-01-02T10:00:00Z","updatedAt":"2025-01-02T10:00:00Z"},
			{"id":"good","amount":11,"title":"Dup","type":"income","category":"9","date":"2025-01-02","synced":false,"createdAt":"2025-01-02T10:00:00Z","updatedAt":"2025-01-02T10:00:00Z"},
			"garbage"
		]`)

		l := newTestLedger(t, kv, Options{})

		transactions := l.store.Transactions()
		require.Len(t, transactions, 1)
		assert.Equal(t, "Good", transactions[0].Title)
		assert.Equal(t, 3, l.metrics.count(l.metrics.skipped, string(SliceTransactions)))
	})

	t.Run("unreadable slot falls back to the default", func(t *testing.T) {
		kv := newFakeKV()
		kv.put(string(SliceOnboarded), `true`)
		kv.failGet[string(SliceOnboarded)] = errors.New("io error")

		l := newTestLedger(t, kv, Options{})

		assert.False(t, l.store.IsOnboarded())
		assert.Equal(t, 1, l.metrics.count(l.metrics.loadFail, string(SliceOnboarded)))
	})

	t.Run("empty storage yields defaults without warnings", func(t *testing.T) {
		l := newTestLedger(t, newFakeKV(), Options{})

		snapshot := l.store.Snapshot()
		assert.Empty(t, snapshot.Transactions)
		assert.Empty(t, snapshot.Budgets)
		assert.Equal(t, entity.DefaultPreferences(), snapshot.Preferences)
		assert.False(t, snapshot.IsOnboarded)
		for _, slice := range AllSlices {
			assert.Equal(t, 0, l.metrics.count(l.metrics.loadFail, string(slice)))
		}
	})
}

// gatedKV blocks every Get until the gate is opened.
type gatedKV struct {
	*fakeKV
	gate chan struct{}
}

func (g *gatedKV) Get(ctx context.Context, key string) (string, error) {
	select {
	case <-g.gate:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return g.fakeKV.Get(ctx, key)
}

func TestStore_OperationsWaitForLoad(t *testing.T) {
	kv := &gatedKV{fakeKV: newFakeKV(), gate: make(chan struct{})}
	existing, err := EncodeTransactions([]entity.Transaction{{
		ID: "loaded", Amount: decimal.NewFromInt(5), Title: "Loaded", Type: entity.TransactionTypeIncome, Category: "9",
	}})
	require.NoError(t, err)
	kv.put(string(SliceTransactions), existing)

	store := NewStore(kv, Options{Clock: newFakeClock(), IDGenerator: &sequenceIDs{}, ReadTimeout: 5 * time.Second})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = store.Close(ctx)
	})

	t.Run("cancelled wait returns the context error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := store.AddTransaction(ctx, draft("Early", 1, entity.TransactionTypeExpense, "1"))
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	done := make(chan error, 1)
	go func() {
		_, err := store.AddTransaction(context.Background(), draft("Queued", 1, entity.TransactionTypeExpense, "1"))
		done <- err
	}()

	select {
	case <-store.Ready():
		t.Fatal("store became ready before storage answered")
	case <-done:
		t.Fatal("mutation completed before the load")
	case <-time.After(30 * time.Millisecond):
	}

	close(kv.gate)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("queued mutation never completed")
	}

	transactions := store.Transactions()
	require.Len(t, transactions, 2)
	assert.Equal(t, "Queued", transactions[0].Title)
	assert.Equal(t, "loaded", transactions[1].ID)
}

func TestStore_WriteFailures(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	l := newTestLedger(t, kv, Options{RetryInterval: time.Hour})

	kv.failSetsOn(string(SliceTransactions), errors.New("disk full"))
	_, err := l.store.AddTransaction(ctx, draft("Coffee", 50, entity.TransactionTypeExpense, "1"))
	require.NoError(t, err, "persistence failures never surface on the mutation")

	flushCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	err = l.store.Flush(flushCtx)
	require.Error(t, err)
	assert.True(t, l.store.Dirty())
	assert.Len(t, l.store.Transactions(), 1)
	assert.GreaterOrEqual(t, l.metrics.count(l.metrics.failed, string(SliceTransactions)), 1)

	kv.failSetsOn(string(SliceTransactions), nil)
	flush(t, l.store)
	assert.False(t, l.store.Dirty())

	stored, ok := kv.value(string(SliceTransactions))
	require.True(t, ok)
	decoded, skipped, err := DecodeTransactions(stored)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assertSameTransactions(t, l.store.Transactions(), decoded)
}

func TestStore_RetriesFailedWritesInBackground(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	l := newTestLedger(t, kv, Options{RetryInterval: 10 * time.Millisecond})

	kv.failSetsOn(string(SliceOnboarded), errors.New("unavailable"))
	require.NoError(t, l.store.SetOnboarded(ctx, true))

	assert.Eventually(t, func() bool {
		return l.metrics.count(l.metrics.failed, string(SliceOnboarded)) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	kv.failSetsOn(string(SliceOnboarded), nil)
	assert.Eventually(t, func() bool {
		v, ok := kv.value(string(SliceOnboarded))
		return ok && v == "true"
	}, 2*time.Second, 5*time.Millisecond)
}

func TestStore_LatestSnapshotWins(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.setDelay = 5 * time.Millisecond
	l := newTestLedger(t, kv, Options{})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.store.AddTransaction(ctx, draft("Tick", 1, entity.TransactionTypeExpense, "1"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	flush(t, l.store)

	stored, ok := kv.value(string(SliceTransactions))
	require.True(t, ok)
	decoded, _, err := DecodeTransactions(stored)
	require.NoError(t, err)
	assertSameTransactions(t, l.store.Transactions(), decoded)
	assert.LessOrEqual(t, kv.setCount(string(SliceTransactions)), 50)
}

func TestStore_Close(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	l := newTestLedger(t, kv, Options{})

	_, err := l.store.AddTransaction(ctx, draft("Coffee", 50, entity.TransactionTypeExpense, "1"))
	require.NoError(t, err)
	require.NoError(t, l.store.Close(ctx))
	require.NoError(t, l.store.Close(ctx))

	_, ok := kv.value(string(SliceTransactions))
	assert.True(t, ok, "close flushes pending writes")

	_, err = l.store.AddTransaction(ctx, draft("Late", 1, entity.TransactionTypeExpense, "1"))
	require.ErrorIs(t, err, domainerror.ErrLedgerClosed)
	assert.Len(t, l.store.Transactions(), 1)
}

package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// load reads every slice concurrently, applies what it could decode and
// marks the store ready. A slice that is absent, unreadable or corrupt
// leaves its default in place; load itself never fails.
func (s *Store) load() {
	defer close(s.ready)

	values := make(map[Slice]string, len(AllSlices))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, slice := range AllSlices {
		wg.Add(1)
		go func(slice Slice) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.opts.ReadTimeout)
			defer cancel()

			value, err := s.kv.Get(ctx, string(slice))
			if err != nil {
				if !errors.Is(err, domainerror.ErrKeyNotFound) {
					slog.Warn("Failed to read ledger slice, using default", "slice", string(slice), "error", err)
					s.metrics.SliceLoadFailed(string(slice))
				}
				return
			}

			mu.Lock()
			values[slice] = value
			mu.Unlock()
		}(slice)
	}
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slice := range AllSlices {
		value, ok := values[slice]
		if !ok {
			continue
		}
		if err := s.apply(slice, value); err != nil {
			slog.Warn("Failed to decode ledger slice, using default", "slice", string(slice), "error", err)
			s.metrics.SliceLoadFailed(string(slice))
		}
	}

	slog.Info("Ledger loaded",
		"transactions", len(s.state.transactions),
		"budgets", len(s.state.budgets),
		"onboarded", s.state.isOnboarded,
		"sync_queue", len(s.state.syncQueue),
	)
}

// apply decodes one persisted slice into the in-memory state.
// Must be called with s.mu held.
func (s *Store) apply(slice Slice, value string) error {
	switch slice {
	case SliceTransactions:
		transactions, skipped, err := DecodeTransactions(value)
		if err != nil {
			return err
		}
		s.reportSkipped(slice, skipped)
		s.state.transactions = transactions
	case SliceBudgets:
		budgets, skipped, err := DecodeBudgets(value)
		if err != nil {
			return err
		}
		s.reportSkipped(slice, skipped)
		s.state.budgets = budgets
	case SlicePreferences:
		preferences, err := DecodePreferences(value)
		if err != nil {
			return err
		}
		s.state.preferences = preferences
	case SliceOnboarded:
		onboarded, err := DecodeOnboarded(value)
		if err != nil {
			return err
		}
		s.state.isOnboarded = onboarded
	case SliceSyncQueue:
		queue, err := DecodeSyncQueue(value)
		if err != nil {
			return err
		}
		s.state.syncQueue = queue
	}
	return nil
}

func (s *Store) reportSkipped(slice Slice, skipped []RecordError) {
	for _, rec := range skipped {
		slog.Warn("Skipping malformed ledger record",
			"slice", string(slice),
			"index", rec.Index,
			"id", rec.ID,
			"error", rec.Err,
		)
		s.metrics.RecordSkipped(string(slice))
	}
}

package ledger

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
)

// fakeKV is an in-memory key-value store with injectable failures.
type fakeKV struct {
	mu       sync.Mutex
	data     map[string]string
	sets     map[string]int
	failSet  map[string]error
	failGet  map[string]error
	setDelay time.Duration
}

func newFakeKV() *fakeKV {
	return &fakeKV{
		data:    map[string]string{},
		sets:    map[string]int{},
		failSet: map[string]error{},
		failGet: map[string]error{},
	}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failGet[key]; err != nil {
		return "", err
	}
	v, ok := f.data[key]
	if !ok {
		return "", domainerror.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	delay := f.setDelay
	f.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failSet[key]; err != nil {
		return err
	}
	f.data[key] = value
	f.sets[key]++
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Ping(context.Context) error {
	return nil
}

func (f *fakeKV) value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeKV) put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

func (f *fakeKV) setCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets[key]
}

func (f *fakeKV) failSetsOn(key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failSet, key)
		return
	}
	f.failSet[key] = err
}

// fakeClock returns a fixed time that tests advance by hand.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 14, 9, 30, 0, 123456789, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequenceIDs hands out txn-1, txn-2, ...
type sequenceIDs struct {
	n atomic.Int64
}

func (g *sequenceIDs) NewID() string {
	return fmt.Sprintf("txn-%d", g.n.Add(1))
}

// fixedIDs hands out the given IDs in order, then repeats the last one.
type fixedIDs struct {
	mu  sync.Mutex
	ids []string
}

func (g *fixedIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.ids[0]
	if len(g.ids) > 1 {
		g.ids = g.ids[1:]
	}
	return id
}

// countingMetrics records observations per operation or slice.
type countingMetrics struct {
	mu       sync.Mutex
	applied  map[string]int
	rejected map[string]int
	loadFail map[string]int
	skipped  map[string]int
	failed   map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{
		applied:  map[string]int{},
		rejected: map[string]int{},
		loadFail: map[string]int{},
		skipped:  map[string]int{},
		failed:   map[string]int{},
	}
}

func (m *countingMetrics) MutationApplied(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied[op]++
}

func (m *countingMetrics) MutationRejected(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[op]++
}

func (m *countingMetrics) SlicePersisted(string) {}

func (m *countingMetrics) SlicePersistFailed(slice string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[slice]++
}

func (m *countingMetrics) SliceLoadFailed(slice string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadFail[slice]++
}

func (m *countingMetrics) RecordSkipped(slice string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skipped[slice]++
}

func (m *countingMetrics) count(set map[string]int, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return set[key]
}

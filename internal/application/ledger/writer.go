package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
)

// encodeFunc serializes an immutable copy of a slice taken at mutation time.
type encodeFunc func() (string, error)

// pendingWrite is a slice snapshot waiting to be written.
type pendingWrite struct {
	version uint64
	encode  encodeFunc
}

// sliceWriter is the single writer of one slice. Snapshots are coalesced so
// only the newest one is ever written, and writes never run concurrently, so
// an older snapshot cannot overwrite a newer one.
type sliceWriter struct {
	slice         Slice
	kv            adapter.KeyValueStore
	metrics       adapter.LedgerMetrics
	writeTimeout  time.Duration
	retryInterval time.Duration
	logger        *slog.Logger

	mu        sync.Mutex
	pending   *pendingWrite
	submitted uint64
	written   uint64
	attempts  uint64
	lastErr   error
	failedAt  uint64 // version of the last failed attempt
	progress  chan struct{} // closed and replaced after every write attempt

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func newSliceWriter(slice Slice, kv adapter.KeyValueStore, metrics adapter.LedgerMetrics, writeTimeout, retryInterval time.Duration) *sliceWriter {
	return &sliceWriter{
		slice:         slice,
		kv:            kv,
		metrics:       metrics,
		writeTimeout:  writeTimeout,
		retryInterval: retryInterval,
		logger:        slog.With("component", "ledger_writer", "slice", string(slice)),
		progress:      make(chan struct{}),
		wake:          make(chan struct{}, 1),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// start runs the writer loop until stop is closed.
func (w *sliceWriter) start() {
	go w.run()
}

func (w *sliceWriter) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-w.wake:
			w.drain()
		case <-ticker.C:
			// Retry a snapshot whose last write failed.
			w.drain()
		}
	}
}

// submit replaces the pending snapshot and wakes the writer. It never blocks.
func (w *sliceWriter) submit(encode encodeFunc) {
	w.mu.Lock()
	w.submitted++
	w.pending = &pendingWrite{version: w.submitted, encode: encode}
	w.mu.Unlock()

	w.kick()
}

func (w *sliceWriter) kick() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// drain writes the pending snapshot until nothing newer is left or a write fails.
func (w *sliceWriter) drain() {
	for {
		w.mu.Lock()
		next := w.pending
		if next == nil || next.version <= w.written {
			w.mu.Unlock()
			return
		}
		w.mu.Unlock()

		err := w.write(next)

		w.mu.Lock()
		w.attempts++
		w.lastErr = err
		if err != nil {
			w.failedAt = next.version
		} else {
			w.written = next.version
			if w.pending == next {
				w.pending = nil
			}
		}
		close(w.progress)
		w.progress = make(chan struct{})
		w.mu.Unlock()

		if err != nil {
			return
		}
	}
}

func (w *sliceWriter) write(p *pendingWrite) error {
	value, err := p.encode()
	if err != nil {
		w.logger.Error("Failed to encode slice", "version", p.version, "error", err)
		w.metrics.SlicePersistFailed(string(w.slice))
		return fmt.Errorf("failed to encode %s: %w", w.slice, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()

	if err := w.kv.Set(ctx, string(w.slice), value); err != nil {
		w.logger.Error("Failed to persist slice", "version", p.version, "error", err)
		w.metrics.SlicePersistFailed(string(w.slice))
		return fmt.Errorf("failed to persist %s: %w", w.slice, err)
	}

	w.logger.Debug("Slice persisted", "version", p.version, "bytes", len(value))
	w.metrics.SlicePersisted(string(w.slice))
	return nil
}

// flush waits until every snapshot submitted before the call is durable.
// It returns the write error if an attempt at one of those snapshots fails
// during the wait.
func (w *sliceWriter) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.submitted
	startAttempts := w.attempts
	w.mu.Unlock()

	w.kick()

	for {
		w.mu.Lock()
		if w.written >= target {
			w.mu.Unlock()
			return nil
		}
		if w.attempts > startAttempts && w.lastErr != nil && w.failedAt >= target {
			err := w.lastErr
			w.mu.Unlock()
			return err
		}
		progress := w.progress
		w.mu.Unlock()

		select {
		case <-ctx.Done():
			return fmt.Errorf("flush %s: %w", w.slice, ctx.Err())
		case <-progress:
		}
	}
}

// dirty reports whether a submitted snapshot has not been written yet.
func (w *sliceWriter) dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written < w.submitted
}

// close stops the writer loop and waits for it to exit.
func (w *sliceWriter) close() {
	close(w.stop)
	<-w.done
}

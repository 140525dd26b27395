package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
)

const (
	// DefaultReadTimeout bounds the read of one slice during load.
	DefaultReadTimeout = 5 * time.Second
	// DefaultWriteTimeout bounds one durable write of a slice.
	DefaultWriteTimeout = 5 * time.Second
	// DefaultRetryInterval is how often a failed slice write is retried.
	DefaultRetryInterval = 30 * time.Second
	// maxIDAttempts caps regeneration when a generated ID is already taken.
	maxIDAttempts = 8
)

// Options configures a Store. Zero values fall back to defaults.
type Options struct {
	Clock         adapter.Clock
	IDGenerator   adapter.IDGenerator
	Metrics       adapter.LedgerMetrics
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	RetryInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	if o.IDGenerator == nil {
		o.IDGenerator = uuidGenerator{}
	}
	if o.Metrics == nil {
		o.Metrics = adapter.NopLedgerMetrics{}
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = DefaultRetryInterval
	}
	return o
}

// systemClock stamps bookkeeping fields with the UTC wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// uuidGenerator assigns random (version 4) UUIDs to new transactions.
type uuidGenerator struct{}

func (uuidGenerator) NewID() string {
	return uuid.NewString()
}

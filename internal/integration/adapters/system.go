// Package adapters provides implementations of the application adapters
// backed by the runtime and third-party libraries.
package adapters

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
)

// SystemClock reads the UTC wall clock.
type SystemClock struct{}

var _ adapter.Clock = SystemClock{}

// Now returns the current time in UTC.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator issues random (version 4) UUID strings.
type UUIDGenerator struct{}

var _ adapter.IDGenerator = UUIDGenerator{}

// NewID returns a fresh UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

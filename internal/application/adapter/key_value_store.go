// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// KeyValueStore is the durable string-keyed storage the ledger persists its
// slices into. Implementations must be safe for concurrent use by distinct keys.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// It returns domainerror.ErrKeyNotFound when the key holds no value.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backing storage is reachable.
	Ping(ctx context.Context) error
}

package error

import "errors"

// Storage errors.
var (
	// ErrKeyNotFound is returned by key-value stores when a key holds no value.
	ErrKeyNotFound = errors.New("key not found")

	// ErrUnsupportedStorageDriver is returned when the configured storage driver is unknown.
	ErrUnsupportedStorageDriver = errors.New("unsupported storage driver")
)

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// IDGenerator produces identifiers for new transactions.
type IDGenerator interface {
	NewID() string
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// LedgerMetrics receives observations from the ledger store.
type LedgerMetrics interface {
	// MutationApplied records a successful named operation.
	MutationApplied(operation string)

	// MutationRejected records an operation that failed validation or lookup.
	MutationRejected(operation string)

	// SlicePersisted records a successful durable write of a slice.
	SlicePersisted(slice string)

	// SlicePersistFailed records a failed durable write of a slice.
	SlicePersistFailed(slice string)

	// SliceLoadFailed records a slice that fell back to its default on load.
	SliceLoadFailed(slice string)

	// RecordSkipped records a malformed record dropped while loading a slice.
	RecordSkipped(slice string)
}

// NopLedgerMetrics discards every observation.
type NopLedgerMetrics struct{}

func (NopLedgerMetrics) MutationApplied(string)    {}
func (NopLedgerMetrics) MutationRejected(string)   {}
func (NopLedgerMetrics) SlicePersisted(string)     {}
func (NopLedgerMetrics) SlicePersistFailed(string) {}
func (NopLedgerMetrics) SliceLoadFailed(string)    {}
func (NopLedgerMetrics) RecordSkipped(string)      {}

// Package syncqueue contains use cases for the pending-sync queue and the
// connectivity flag.
package syncqueue

import (
	"context"

	"github.com/finance-tracker/ewallet/internal/application/adapter"
)

// StatusOutput represents the sync queue and connectivity state.
type StatusOutput struct {
	Pending  []string
	IsOnline bool
}

// GetStatusUseCase handles reading the sync state.
type GetStatusUseCase struct {
	ledger adapter.LedgerReader
}

// NewGetStatusUseCase creates a new GetStatusUseCase instance.
func NewGetStatusUseCase(ledger adapter.LedgerReader) *GetStatusUseCase {
	return &GetStatusUseCase{
		ledger: ledger,
	}
}

// Execute returns the pending ids in insertion order.
func (uc *GetStatusUseCase) Execute(_ context.Context) (*StatusOutput, error) {
	snapshot := uc.ledger.Snapshot()
	return &StatusOutput{
		Pending:  snapshot.SyncQueue,
		IsOnline: snapshot.IsOnline,
	}, nil
}

// SetOnlineUseCase handles toggling the connectivity flag.
type SetOnlineUseCase struct {
	ledger adapter.Ledger
}

// NewSetOnlineUseCase creates a new SetOnlineUseCase instance.
func NewSetOnlineUseCase(ledger adapter.Ledger) *SetOnlineUseCase {
	return &SetOnlineUseCase{
		ledger: ledger,
	}
}

// Execute sets the flag and returns the resulting state.
func (uc *SetOnlineUseCase) Execute(ctx context.Context, online bool) (*StatusOutput, error) {
	if err := uc.ledger.SetOnline(ctx, online); err != nil {
		return nil, err
	}
	return &StatusOutput{
		Pending:  uc.ledger.SyncQueue(),
		IsOnline: online,
	}, nil
}

// AcknowledgeUseCase handles removing a synchronized id from the queue.
type AcknowledgeUseCase struct {
	ledger adapter.Ledger
}

// NewAcknowledgeUseCase creates a new AcknowledgeUseCase instance.
func NewAcknowledgeUseCase(ledger adapter.Ledger) *AcknowledgeUseCase {
	return &AcknowledgeUseCase{
		ledger: ledger,
	}
}

// Execute removes id from the queue. Unknown ids are a no-op.
func (uc *AcknowledgeUseCase) Execute(ctx context.Context, id string) error {
	return uc.ledger.RemoveFromSyncQueue(ctx, id)
}

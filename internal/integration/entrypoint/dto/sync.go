package dto

import (
	"github.com/finance-tracker/ewallet/internal/application/usecase/syncqueue"
)

// SetOnlineRequest represents the request body for toggling connectivity.
type SetOnlineRequest struct {
	Online *bool `json:"online" binding:"required"`
}

// SyncStatusResponse represents the sync queue state.
type SyncStatusResponse struct {
	Pending  []string `json:"pending"`
	IsOnline bool     `json:"is_online"`
}

// ToSyncStatusResponse converts a StatusOutput to a SyncStatusResponse DTO.
func ToSyncStatusResponse(output *syncqueue.StatusOutput) SyncStatusResponse {
	pending := output.Pending
	if pending == nil {
		pending = []string{}
	}
	return SyncStatusResponse{
		Pending:  pending,
		IsOnline: output.IsOnline,
	}
}

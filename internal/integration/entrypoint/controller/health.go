package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	ledgerReady    func() bool
	storageChecker func(ctx context.Context) error
	clock          func() time.Time
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Ledger    string `json:"ledger"`
	Storage   string `json:"storage"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(ledgerReady func() bool, storageChecker func(ctx context.Context) error) *HealthController {
	return &HealthController{
		ledgerReady:    ledgerReady,
		storageChecker: storageChecker,
		clock:          time.Now,
	}
}

// Check handles GET /health requests.
// It reports 200 once the ledger has loaded and the storage answers, 503 otherwise.
func (h *HealthController) Check(c *gin.Context) {
	ledgerStatus := "loading"
	if h.ledgerReady != nil && h.ledgerReady() {
		ledgerStatus = "ready"
	}

	storageStatus := "disconnected"
	if h.storageChecker != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.storageChecker(ctx); err == nil {
			storageStatus = "connected"
		}
	}

	status, code := "ok", http.StatusOK
	if ledgerStatus != "ready" || storageStatus != "connected" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:    status,
		Ledger:    ledgerStatus,
		Storage:   storageStatus,
		Timestamp: h.clock().UTC().Format(time.RFC3339),
	})
}

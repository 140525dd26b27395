package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/internal/application/usecase/syncqueue"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/dto"
)

// SyncController handles sync queue and connectivity endpoints.
type SyncController struct {
	statusUseCase      *syncqueue.GetStatusUseCase
	setOnlineUseCase   *syncqueue.SetOnlineUseCase
	acknowledgeUseCase *syncqueue.AcknowledgeUseCase
}

// NewSyncController creates a new sync controller instance.
func NewSyncController(
	statusUseCase *syncqueue.GetStatusUseCase,
	setOnlineUseCase *syncqueue.SetOnlineUseCase,
	acknowledgeUseCase *syncqueue.AcknowledgeUseCase,
) *SyncController {
	return &SyncController{
		statusUseCase:      statusUseCase,
		setOnlineUseCase:   setOnlineUseCase,
		acknowledgeUseCase: acknowledgeUseCase,
	}
}

// Status handles GET /sync requests.
func (c *SyncController) Status(ctx *gin.Context) {
	output, err := c.statusUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSyncStatusResponse(output))
}

// SetOnline handles PUT /sync/online requests.
func (c *SyncController) SetOnline(ctx *gin.Context) {
	var req dto.SetOnlineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), "")
		return
	}

	output, err := c.setOnlineUseCase.Execute(ctx.Request.Context(), *req.Online)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSyncStatusResponse(output))
}

// Acknowledge handles DELETE /sync/:id requests.
func (c *SyncController) Acknowledge(ctx *gin.Context) {
	if err := c.acknowledgeUseCase.Execute(ctx.Request.Context(), ctx.Param("id")); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/internal/application/usecase/data"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/dto"
)

const (
	maxImportBytes = 32 << 20
	xlsxMediaType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// DataController handles export, import and reset endpoints.
type DataController struct {
	exportUseCase   *data.ExportDataUseCase
	workbookUseCase *data.ExportWorkbookUseCase
	importUseCase   *data.ImportDataUseCase
	clearUseCase    *data.ClearDataUseCase
}

// NewDataController creates a new data controller instance.
func NewDataController(
	exportUseCase *data.ExportDataUseCase,
	workbookUseCase *data.ExportWorkbookUseCase,
	importUseCase *data.ImportDataUseCase,
	clearUseCase *data.ClearDataUseCase,
) *DataController {
	return &DataController{
		exportUseCase:   exportUseCase,
		workbookUseCase: workbookUseCase,
		importUseCase:   importUseCase,
		clearUseCase:    clearUseCase,
	}
}

// Export handles GET /data/export requests.
func (c *DataController) Export(ctx *gin.Context) {
	output, err := c.exportUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+output.FileName)
	ctx.Data(http.StatusOK, "application/json", output.Content)
}

// ExportWorkbook handles GET /data/export.xlsx requests.
func (c *DataController) ExportWorkbook(ctx *gin.Context) {
	output, err := c.workbookUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+output.FileName)
	ctx.Data(http.StatusOK, xlsxMediaType, output.Content)
}

// Import handles POST /data/import requests. The body is an export document.
func (c *DataController) Import(ctx *gin.Context) {
	content, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportBytes))
	if err != nil {
		badRequest(ctx, "Failed to read request body", string(domainerror.ErrCodeInvalidExportDocument))
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), data.ImportDataInput{Content: content})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportDataResponse(output))
}

// Clear handles DELETE /data requests.
func (c *DataController) Clear(ctx *gin.Context) {
	if err := c.clearUseCase.Execute(ctx.Request.Context()); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

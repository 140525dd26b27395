package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ewallet/internal/application/usecase/transaction"
	"github.com/finance-tracker/ewallet/internal/domain/entity"
	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase    *transaction.ListTransactionsUseCase
	createUseCase  *transaction.CreateTransactionUseCase
	updateUseCase  *transaction.UpdateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	replaceUseCase *transaction.ReplaceTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	replaceUseCase *transaction.ReplaceTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		replaceUseCase: replaceUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	input := transaction.ListTransactionsInput{
		Search: ctx.Query("search"),
		Type:   ctx.DefaultQuery("type", transaction.TypeFilterAll),
	}

	switch input.Type {
	case transaction.TypeFilterAll, string(entity.TransactionTypeIncome), string(entity.TransactionTypeExpense):
	default:
		badRequest(ctx, "type must be all, income or expense", string(domainerror.ErrCodeInvalidTransactionType))
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.CreateTransactionInput{
		Amount:   req.Amount,
		Title:    req.Title,
		Type:     entity.TransactionType(req.Type),
		Category: req.Category,
		Notes:    req.Notes,
	}

	if req.Date != "" {
		date, err := dto.ParseDate(req.Date)
		if err != nil {
			badRequest(ctx, "Invalid date format. Use YYYY-MM-DD or RFC 3339", string(domainerror.ErrCodeInvalidTransactionDate))
			return
		}
		input.Date = date
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: ctx.Param("id"),
		Amount:        req.Amount,
		Title:         req.Title,
		Category:      req.Category,
		Notes:         req.Notes,
	}

	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}

	if req.Date != nil {
		date, err := dto.ParseDate(*req.Date)
		if err != nil {
			badRequest(ctx, "Invalid date format. Use YYYY-MM-DD or RFC 3339", string(domainerror.ErrCodeInvalidTransactionDate))
			return
		}
		input.Date = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	input := transaction.DeleteTransactionInput{
		TransactionID: ctx.Param("id"),
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), input); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Replace handles PUT /transactions requests.
func (c *TransactionController) Replace(ctx *gin.Context) {
	var req dto.ReplaceTransactionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	transactions := make([]entity.Transaction, len(req.Transactions))
	for i, record := range req.Transactions {
		t, err := record.ToEntity()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Invalid transaction record",
				Code:    string(domainerror.ErrCodeMissingTransactionFields),
				Details: err.Error(),
			})
			return
		}
		transactions[i] = t
	}

	err := c.replaceUseCase.Execute(ctx.Request.Context(), transaction.ReplaceTransactionsInput{
		Transactions: transactions,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ReplaceTransactionsResponse{Count: len(transactions)})
}

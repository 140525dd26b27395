// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/ewallet/internal/domain/error"
	"github.com/finance-tracker/ewallet/internal/integration/entrypoint/dto"
)

// handleError maps domain errors to HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		response := dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		}
		if ledgerErr.Err != nil {
			response.Details = ledgerErr.Err.Error()
		}
		ctx.JSON(getStatusCodeForLedgerError(ledgerErr.Code), response)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "The ledger is still loading",
		})
		return
	}

	slog.Error("Unhandled request error", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidTransactionTitle,
		domainerror.ErrCodeInvalidTransactionCategory,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidTransactionID,
		domainerror.ErrCodeInvalidTransactionNotes:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForLedgerError maps ledger error codes to HTTP status codes.
func getStatusCodeForLedgerError(code domainerror.LedgerErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidTheme,
		domainerror.ErrCodeInvalidCurrency,
		domainerror.ErrCodeInvalidBudgetPeriod,
		domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeInvalidExportDocument,
		domainerror.ErrCodeInvalidTimePeriod,
		domainerror.ErrCodeDuplicateBudget:
		return http.StatusBadRequest
	case domainerror.ErrCodeLedgerClosed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(ctx *gin.Context, message string, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

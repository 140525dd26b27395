package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/ledger"
	"github.com/finance-tracker/ewallet/internal/application/usecase/transaction"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Title    string          `json:"title" binding:"required,max=255"`
	Type     string          `json:"type" binding:"required,oneof=expense income"`
	Category string          `json:"category" binding:"required"`
	Date     string          `json:"date,omitempty"`
	Notes    string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Title    *string          `json:"title,omitempty" binding:"omitempty,max=255"`
	Type     *string          `json:"type,omitempty" binding:"omitempty,oneof=expense income"`
	Category *string          `json:"category,omitempty"`
	Date     *string          `json:"date,omitempty"`
	Notes    *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// ReplaceTransactionsRequest carries a full collection in the stored record shape.
type ReplaceTransactionsRequest struct {
	Transactions []ledger.TransactionRecord `json:"transactions" binding:"required"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID        string                      `json:"id"`
	Amount    string                      `json:"amount"`
	Title     string                      `json:"title"`
	Type      string                      `json:"type"`
	Category  TransactionCategoryResponse `json:"category"`
	Date      string                      `json:"date"`
	Notes     string                      `json:"notes"`
	Synced    bool                        `json:"synced"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse    `json:"transactions"`
	Totals       TransactionTotalsResponse `json:"totals"`
}

// ReplaceTransactionsResponse represents the response for a wholesale replace.
type ReplaceTransactionsResponse struct {
	Count int `json:"count"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:     txn.ID,
		Amount: txn.Amount.String(),
		Title:  txn.Title,
		Type:   string(txn.Type),
		Category: TransactionCategoryResponse{
			ID:    txn.Category.ID,
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
			Type:  string(txn.Category.Type),
		},
		Date:      txn.Date.UTC().Format(time.RFC3339),
		Notes:     txn.Notes,
		Synced:    txn.Synced,
		CreatedAt: txn.CreatedAt,
		UpdatedAt: txn.UpdatedAt,
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to a TransactionListResponse DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Totals: TransactionTotalsResponse{
			IncomeTotal:  output.Totals.IncomeTotal.String(),
			ExpenseTotal: output.Totals.ExpenseTotal.String(),
			NetTotal:     output.Totals.NetTotal.String(),
		},
	}
}

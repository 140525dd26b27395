package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ewallet/internal/application/usecase/budget"
)

// BudgetRequest represents one budget in a replace request.
type BudgetRequest struct {
	ID         string          `json:"id,omitempty"`
	CategoryID string          `json:"category_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period" binding:"required"`
	Spent      decimal.Decimal `json:"spent"`
}

// SetBudgetsRequest represents the request body for replacing all budgets.
type SetBudgetsRequest struct {
	Budgets []BudgetRequest `json:"budgets" binding:"required,dive"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID        string                      `json:"id"`
	Category  TransactionCategoryResponse `json:"category"`
	Amount    string                      `json:"amount"`
	Period    string                      `json:"period"`
	Spent     string                      `json:"spent"`
	Remaining string                      `json:"remaining"`
	Exceeded  bool                        `json:"exceeded"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetListResponse converts a ListBudgetsOutput to a BudgetListResponse DTO.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, b := range output.Budgets {
		budgets[i] = BudgetResponse{
			ID: b.ID,
			Category: TransactionCategoryResponse{
				ID:    b.Category.ID,
				Name:  b.Category.Name,
				Color: b.Category.Color,
				Icon:  b.Category.Icon,
				Type:  string(b.Category.Type),
			},
			Amount:    b.Amount.String(),
			Period:    string(b.Period),
			Spent:     b.Spent.String(),
			Remaining: b.Remaining.String(),
			Exceeded:  b.Exceeded,
		}
	}
	return BudgetListResponse{Budgets: budgets}
}

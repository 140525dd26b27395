package dto

import (
	"github.com/finance-tracker/ewallet/internal/application/usecase/category"
)

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Color            string `json:"color"`
	Icon             string `json:"icon"`
	Type             string `json:"type"`
	TransactionCount int    `json:"transaction_count"`
	Total            string `json:"total"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryListResponse converts a ListCategoriesOutput to a CategoryListResponse DTO.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryResponse{
			ID:               c.ID,
			Name:             c.Name,
			Color:            c.Color,
			Icon:             c.Icon,
			Type:             string(c.Type),
			TransactionCount: c.TransactionCount,
			Total:            c.Total.String(),
		}
	}
	return CategoryListResponse{Categories: categories}
}

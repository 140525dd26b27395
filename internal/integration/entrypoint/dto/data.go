package dto

import (
	"github.com/finance-tracker/ewallet/internal/application/usecase/data"
)

// ImportDataResponse summarizes a restored export.
type ImportDataResponse struct {
	Transactions        int  `json:"transactions"`
	Budgets             int  `json:"budgets"`
	PreferencesRestored bool `json:"preferences_restored"`
}

// ToImportDataResponse converts an ImportDataOutput to an ImportDataResponse DTO.
func ToImportDataResponse(output *data.ImportDataOutput) ImportDataResponse {
	return ImportDataResponse{
		Transactions:        output.Transactions,
		Budgets:             output.Budgets,
		PreferencesRestored: output.PreferencesRestored,
	}
}

package usecase

import (
	"strings"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

// Row validation messages
const (
	MsgNameRequired = "Name is required"
	MsgPriceNotNum  = "Price must be a number"
	MsgStockNotNum  = "Stock must be a number"
	firstDataRowNum = 2
)

// ValidateRows checks every parsed row and collects all of its problems.
// Row numbers are spreadsheet rows: the header is row 1.
func ValidateRows(rows []entity.ParsedRow) []entity.ValidationResult {
	results := make([]entity.ValidationResult, len(rows))
	for i, row := range rows {
		errs := []string{}
		if strings.TrimSpace(row.Name) == "" {
			errs = append(errs, MsgNameRequired)
		}
		if !row.PriceOK {
			errs = append(errs, MsgPriceNotNum)
		}
		if !row.StockOK {
			errs = append(errs, MsgStockNotNum)
		}

		results[i] = entity.ValidationResult{
			RowNumber: i + firstDataRowNum,
			Row:       row,
			IsValid:   len(errs) == 0,
			Errors:    errs,
			Status:    entity.ImportPending,
		}
	}
	return results
}

package repository

import (
	"context"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

// SpreadsheetParser reads an uploaded spreadsheet into rows
type SpreadsheetParser interface {
	// ParseRows parses a file body; the filename picks the format
	ParseRows(ctx context.Context, data []byte, filename string) ([]entity.ParsedRow, error)

	// Template builds an empty import template workbook
	Template() ([]byte, error)
}

package parser

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

const (
	colName        = "name"
	colDescription = "description"
	colPrice       = "price"
	colStock       = "stock"
	colCategory    = "category"
	colSKU         = "sku"
	colActive      = "active"
)

// headerAliases normalized header text -> column key
var headerAliases = map[string]string{
	"name":          colName,
	"product":       colName,
	"product name":  colName,
	"title":         colName,
	"description":   colDescription,
	"desc":          colDescription,
	"details":       colDescription,
	"price":         colPrice,
	"unit price":    colPrice,
	"stock":         colStock,
	"qty":           colStock,
	"quantity":      colStock,
	"category":      colCategory,
	"category name": colCategory,
	"categoryname":  colCategory,
	"sku":           colSKU,
	"active":        colActive,
	"is active":     colActive,
	"enabled":       colActive,
}

type spreadsheetParser struct{}

// NewSpreadsheetParser creates the .xlsx/.csv parser
func NewSpreadsheetParser() repository.SpreadsheetParser {
	return &spreadsheetParser{}
}

// ParseRows reads the first sheet (or the CSV body) into rows keyed by the header row
func (p *spreadsheetParser) ParseRows(ctx context.Context, data []byte, filename string) ([]entity.ParsedRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		records, err = readXLSX(data)
	case ".csv":
		records, err = readCSV(data)
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFile, filename)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 || isEmptyRow(records[0]) {
		return nil, entity.ErrEmptySpreadsheet
	}

	columns := mapColumns(records[0])
	slog.Debug("spreadsheet header mapped", "file", filename, "columns", columns, "records", len(records)-1)

	rows := make([]entity.ParsedRow, 0, len(records)-1)
	for _, record := range records[1:] {
		// Blank rows are dropped before numbering, like a sheet_to_json export
		if isEmptyRow(record) {
			continue
		}
		rows = append(rows, buildRow(record, columns))
	}

	return rows, nil
}

// readXLSX first sheet with raw cell values so numbers are not display-formatted
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, entity.ErrEmptySpreadsheet
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", len(records)+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// mapColumns header row -> column key index. Unknown headers are ignored;
// the first occurrence of a key wins.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int)
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		name = strings.TrimSpace(strings.TrimSuffix(name, "*"))
		key, ok := headerAliases[name]
		if !ok {
			continue
		}
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}
	return columns
}

func buildRow(record []string, columns map[string]int) entity.ParsedRow {
	cell := func(key string) string {
		idx, ok := columns[key]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := entity.ParsedRow{
		Name:        cell(colName),
		Description: cell(colDescription),
		Category:    cell(colCategory),
		SKU:         cell(colSKU),
		RawPrice:    cell(colPrice),
		RawStock:    cell(colStock),
	}

	if price, ok := parseNumber(row.RawPrice); ok {
		row.Price = price
		row.PriceOK = true
	}
	if stock, ok := parseNumber(row.RawStock); ok {
		row.Stock = int(math.Round(stock))
		row.StockOK = true
	}
	if active, ok := parseBool(cell(colActive)); ok {
		row.Active = &active
	}

	return row
}

// isEmptyRow reports whether every cell is blank
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseNumber accepts finite decimal numbers only; blanks are not numbers
func parseNumber(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "1":
		return true, true
	case "false", "no", "n", "0":
		return false, true
	}
	return false, false
}

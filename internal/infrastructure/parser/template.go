package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	templateSheet     = "Products"
	instructionsSheet = "Instructions"
)

type templateColumn struct {
	Name        string
	Description string
	Required    bool
	Type        string
	Example     string
}

var templateColumns = []templateColumn{
	{colName, "Product name shown in the store", true, "text", "Basmati Rice 5kg"},
	{colDescription, "Long description; may be left blank", false, "text", "Aged long-grain rice"},
	{colPrice, "Unit price in currency units, e.g. 19.99", true, "number", "19.99"},
	{colStock, "Units in stock", true, "number", "40"},
	{colCategory, "Category name or slug; unknown categories are left unassigned", false, "text", "Grains"},
	{colSKU, "Stock keeping unit", false, "text", "RICE-5KG"},
	{colActive, "true/false; defaults to true", false, "boolean", "true"},
}

// Template builds an empty import workbook with a styled header row and an
// Instructions sheet.
func (p *spreadsheetParser) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	requiredStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("required style: %w", err)
	}

	for i, col := range templateColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		text, style := col.Name, headerStyle
		if col.Required {
			text, style = col.Name+" *", requiredStyle
		}
		if err := f.SetCellValue(templateSheet, cell, text); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(templateSheet, cell, cell, style); err != nil {
			return nil, err
		}
		letter, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(templateSheet, letter, letter, 20); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(instructionsSheet); err != nil {
		return nil, fmt.Errorf("instructions sheet: %w", err)
	}
	lines := [][]any{
		{"Product Import Instructions"},
		{},
		{"Fill one product per row on the Products sheet. Columns marked * are required."},
		{"Blank rows are skipped. Row numbers in the import report match the sheet rows."},
		{},
		{"Column", "Description", "Required", "Type", "Example"},
	}
	for _, col := range templateColumns {
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		lines = append(lines, []any{col.Name, col.Description, required, col.Type, col.Example})
	}
	for i, line := range lines {
		if len(line) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(instructionsSheet, cell, &line); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(instructionsSheet, "A", "A", 25)
	_ = f.SetColWidth(instructionsSheet, "B", "B", 60)
	_ = f.SetColWidth(instructionsSheet, "C", "D", 15)
	_ = f.SetColWidth(instructionsSheet, "E", "E", 30)

	idx, err := f.GetSheetIndex(templateSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return buf.Bytes(), nil
}

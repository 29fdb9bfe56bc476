// Package parser reads worksheets out of xlsx workbooks: cell text, table
// bounds, print areas and the charts a workbook embeds.
package parser

import (
	"github.com/xuri/excelize/v2"
)

// ExtractRows returns the displayed text of every row of a sheet.
// Rows are padded with empty strings to the widest row, since excelize trims
// trailing empty cells.
func ExtractRows(f *excelize.File, sheetName string) ([][]string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}

	return rows, nil
}

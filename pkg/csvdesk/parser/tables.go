package parser

import (
	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 1,
	}
}

// DetectTable finds the bounding box of the non-empty cells in rows and
// reports whether it is dense enough to be read as a table.
func DetectTable(rows [][]string, params TableDetectionParams) (models.PrintArea, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return models.PrintArea{}, false
	}

	nonEmpty := countNonEmptyCells(rows, minRow, maxRow, minCol, maxCol)
	if nonEmpty < params.MinNonemptyCells {
		return models.PrintArea{}, false
	}

	total := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	if float64(nonEmpty)/float64(total) < params.DensityMin {
		return models.PrintArea{}, false
	}

	return models.PrintArea{
		R1: minRow + 1,
		C1: minCol + 1,
		R2: maxRow + 1,
		C2: maxCol + 1,
	}, true
}

// findDataBounds finds the 0-based bounding box of non-empty cells.
// All four bounds are -1 when every cell is empty.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for r, row := range rows {
		for c, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 {
				minRow = r
			}
			maxRow = r
			if minCol < 0 || c < minCol {
				minCol = c
			}
			if c > maxCol {
				maxCol = c
			}
		}
	}

	return
}

func countNonEmptyCells(rows [][]string, minRow, maxRow, minCol, maxCol int) int {
	count := 0
	for r := minRow; r <= maxRow && r < len(rows); r++ {
		row := rows[r]
		for c := minCol; c <= maxCol && c < len(row); c++ {
			if row[c] != "" {
				count++
			}
		}
	}
	return count
}

// crop returns the cells inside area (1-based, inclusive), padding short rows.
func crop(rows [][]string, area models.PrintArea) [][]string {
	out := make([][]string, 0, area.Rows())
	for r := area.R1 - 1; r < area.R2; r++ {
		rec := make([]string, area.Cols())
		if r < len(rows) {
			row := rows[r]
			for c := area.C1 - 1; c < area.C2 && c < len(row); c++ {
				rec[c-area.C1+1] = row[c]
			}
		}
		out = append(out, rec)
	}
	return out
}

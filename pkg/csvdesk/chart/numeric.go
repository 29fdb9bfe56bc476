package chart

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

// NumericColumns returns the positions of the columns whose non-blank cells
// all parse as integers or floats, in column order. Column types are detected
// the way a dataframe loader does it: a column with no values at all is text.
func NumericColumns(ds *models.Dataset) []int {
	if ds.NumRows() == 0 || ds.NumColumns() == 0 {
		return nil
	}

	df := dataframe.LoadRecords(ds.Records(),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return scanNumericColumns(ds)
	}

	var idx []int
	for i, t := range df.Types() {
		if t == series.Int || t == series.Float {
			idx = append(idx, i)
		}
	}
	return idx
}

// scanNumericColumns applies the same rule cell by cell.
func scanNumericColumns(ds *models.Dataset) []int {
	var idx []int
	for c := range ds.Columns {
		numbers := 0
		text := false
		for _, row := range ds.Rows {
			switch models.ParseValue(row[c]).Kind {
			case models.KindNumber:
				numbers++
			case models.KindText:
				text = true
			}
		}
		if numbers > 0 && !text {
			idx = append(idx, c)
		}
	}
	return idx
}

// columnValues parses column c into floats; blank and infinite cells
// become NaN.
func columnValues(ds *models.Dataset, c int) []float64 {
	values := make([]float64, ds.NumRows())
	for i, row := range ds.Rows {
		values[i] = number(row[c])
	}
	return values
}

// number parses a cell for plotting. "inf" and "-inf" count as missing.
func number(cell string) float64 {
	v := models.ParseValue(cell).Number
	if math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

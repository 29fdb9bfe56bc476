package models

import (
	"fmt"
	"math"
)

// Heatmap is a pivot of a value column keyed by two categorical columns.
type Heatmap struct {
	// RowKey, ColumnKey and ValueKey name the source columns.
	RowKey    string
	ColumnKey string
	ValueKey  string
	// Rows and Columns are the distinct keys, sorted.
	Rows    []string
	Columns []string
	// Values is indexed [row][column]; NaN marks a missing pair.
	Values [][]float64
}

// At returns the cell value and whether it is present.
func (h Heatmap) At(r, c int) (float64, bool) {
	v := h.Values[r][c]
	if math.IsNaN(v) {
		return v, false
	}
	return v, true
}

// Label formats the cell for display, rounded to one decimal place.
// Missing cells have an empty label.
func (h Heatmap) Label(r, c int) string {
	v, ok := h.At(r, c)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.1f", v)
}

// Range returns the smallest and largest present value.
func (h Heatmap) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range h.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// Point is one row of a line series: the row position and its value.
type Point struct {
	X int
	Y float64
}

// LineSeries is a numeric column plotted against row position.
// Rows whose cell is blank have no point.
type LineSeries struct {
	// Index is the position of the column among the numeric columns.
	Index  int
	Name   string
	Points []Point
}

// XValues returns the row positions as floats.
func (s LineSeries) XValues() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = float64(p.X)
	}
	return xs
}

// YValues returns the point values.
func (s LineSeries) YValues() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

// Slice is one distinct value and how many rows carry it.
type Slice struct {
	Label string
	Count int
}

// PieChart holds value counts ordered by descending count, ties in
// first-seen order.
type PieChart struct {
	Column string
	Slices []Slice
}

// Total returns the number of counted rows.
func (p PieChart) Total() int {
	n := 0
	for _, s := range p.Slices {
		n += s.Count
	}
	return n
}

// Percent returns slice i's share of the total in percent.
func (p PieChart) Percent(i int) float64 {
	total := p.Total()
	if total == 0 {
		return 0
	}
	return 100 * float64(p.Slices[i].Count) / float64(total)
}

// BarSeries is one numeric column's values in row order; NaN marks a blank.
type BarSeries struct {
	Name   string
	Values []float64
}

// BarChart compares every numeric column row by row.
type BarChart struct {
	Rows   int
	Series []BarSeries
}

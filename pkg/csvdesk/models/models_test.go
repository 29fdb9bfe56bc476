package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
		num  float64
	}{
		{"int", "42", KindNumber, 42},
		{"negative float", "-3.5", KindNumber, -3.5},
		{"exponent", "1e3", KindNumber, 1000},
		{"blank", "", KindEmpty, math.NaN()},
		{"nan", "NaN", KindEmpty, math.NaN()},
		{"text", "A", KindText, math.NaN()},
		{"padded", " 7", KindText, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseValue(tt.in)
			assert.Equal(t, tt.kind, v.Kind)
			assert.Equal(t, tt.in, v.Text)

			f, ok := v.Float()
			assert.Equal(t, tt.kind == KindNumber, ok)
			if math.IsNaN(tt.num) {
				assert.True(t, math.IsNaN(f))
			} else {
				assert.InDelta(t, tt.num, f, 1e-9)
			}
		})
	}
}

func TestDataset(t *testing.T) {
	ds := NewDataset([]string{"a", "b"})
	ds.Rows = append(ds.Rows, []string{"1", "x"}, []string{"2", "y"})

	assert.Equal(t, 2, ds.NumColumns())
	assert.Equal(t, 2, ds.NumRows())
	assert.Equal(t, 1, ds.ColumnIndex("b"))
	assert.Equal(t, -1, ds.ColumnIndex("c"))

	col, ok := ds.Column("b")
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, col)

	c := ds.Clone()
	c.Rows[0][0] = "changed"
	assert.Equal(t, "1", ds.Rows[0][0])
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "x"}, {"2", "y"}}, ds.Records())
}

func TestHeatmap(t *testing.T) {
	h := Heatmap{
		Rows:    []string{"Al", "Bo"},
		Columns: []string{"Math"},
		Values:  [][]float64{{89.96}, {math.NaN()}},
	}

	assert.Equal(t, "90.0", h.Label(0, 0))
	assert.Empty(t, h.Label(1, 0))

	lo, hi, ok := h.Range()
	assert.True(t, ok)
	assert.InDelta(t, 89.96, lo, 1e-9)
	assert.InDelta(t, 89.96, hi, 1e-9)

	_, _, ok = Heatmap{Values: [][]float64{{math.NaN()}}}.Range()
	assert.False(t, ok)
}

func TestPieChart(t *testing.T) {
	p := PieChart{Column: "Grade", Slices: []Slice{{"A", 3}, {"B", 1}}}

	assert.Equal(t, 4, p.Total())
	assert.InDelta(t, 75.0, p.Percent(0), 1e-9)
	assert.Zero(t, PieChart{Slices: []Slice{{"A", 0}}}.Percent(0))
}

func TestPrintArea(t *testing.T) {
	a := PrintArea{R1: 1, C1: 2, R2: 10, C2: 4}

	assert.Equal(t, 10, a.Rows())
	assert.Equal(t, 3, a.Cols())
	assert.Equal(t, "R1C2:R10C4", a.String())
}

package chart

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

// Describe summarizes every numeric column: count, mean, sample standard
// deviation, min, quartiles and max over the non-blank cells.
func Describe(ds *models.Dataset) ([]models.ColumnSummary, error) {
	numeric := NumericColumns(ds)
	if len(numeric) == 0 {
		return nil, ErrNoNumericColumns
	}

	summaries := make([]models.ColumnSummary, 0, len(numeric))
	for _, c := range numeric {
		var data stats.Float64Data
		for _, v := range columnValues(ds, c) {
			if !math.IsNaN(v) {
				data = append(data, v)
			}
		}
		summaries = append(summaries, summarize(ds.Columns[c], data))
	}
	return summaries, nil
}

func summarize(name string, data stats.Float64Data) models.ColumnSummary {
	s := models.ColumnSummary{
		Name:  name,
		Count: data.Len(),
	}

	s.Mean, s.Std = stat.MeanStdDev(data, nil)
	if s.Count < 2 {
		s.Std = math.NaN()
	}
	s.Min, _ = data.Min()
	s.Max, _ = data.Max()
	s.Median, _ = data.Median()

	if s.Count > 0 {
		sorted := append([]float64(nil), data...)
		sort.Float64s(sorted)
		s.Q1, s.Q3 = quantile(sorted, 0.25), quantile(sorted, 0.75)
	} else {
		s.Q1, s.Q3 = s.Median, s.Median
	}
	return s
}

// quantile interpolates linearly between the two closest ranks of sorted,
// at position (n-1)*p. This matches pandas describe and numpy's default.
func quantile(sorted []float64, p float64) float64 {
	pos := float64(len(sorted)-1) * p
	i := int(math.Floor(pos))
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (pos-float64(i))*(sorted[i+1]-sorted[i])
}

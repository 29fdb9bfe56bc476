// Package chart derives chart-ready aggregates from a dataset: a pivot for
// the heatmap, value counts for the pie chart, numeric column selection for
// line and bar charts. Every derivation is read-only.
package chart

import (
	"math"
	"sort"
	"strconv"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

// Options names the gradebook columns the charts read.
type Options struct {
	Student string
	Course  string
	Final   string
	Grade   string
}

// DefaultOptions returns the gradebook column names.
func DefaultOptions() Options {
	return Options{
		Student: "Student",
		Course:  "Course",
		Final:   "Final",
		Grade:   "Grade",
	}
}

// Adapter prepares chart data using a fixed set of column names.
type Adapter struct {
	opts Options
}

// New creates an Adapter. Empty names fall back to the defaults.
func New(opts Options) *Adapter {
	def := DefaultOptions()
	if opts.Student == "" {
		opts.Student = def.Student
	}
	if opts.Course == "" {
		opts.Course = def.Course
	}
	if opts.Final == "" {
		opts.Final = def.Final
	}
	if opts.Grade == "" {
		opts.Grade = def.Grade
	}
	return &Adapter{opts: opts}
}

// Options returns the column names in use.
func (a *Adapter) Options() Options {
	return a.opts
}

// PrepareHeatmap pivots with the default column names.
func PrepareHeatmap(ds *models.Dataset) (models.Heatmap, error) {
	return New(DefaultOptions()).Heatmap(ds)
}

// PrepareLineSeries selects the nth numeric column.
func PrepareLineSeries(ds *models.Dataset, n int) (models.LineSeries, error) {
	return New(DefaultOptions()).LineSeries(ds, n)
}

// PreparePie counts grades with the default column name.
func PreparePie(ds *models.Dataset) (models.PieChart, error) {
	return New(DefaultOptions()).Pie(ds)
}

// PrepareBar collects every numeric column.
func PrepareBar(ds *models.Dataset) (models.BarChart, error) {
	return New(DefaultOptions()).Bar(ds)
}

// Columns describes every column with its inferred kind.
func (a *Adapter) Columns(ds *models.Dataset) []models.ColumnInfo {
	numeric := make(map[int]bool)
	for _, c := range NumericColumns(ds) {
		numeric[c] = true
	}

	infos := make([]models.ColumnInfo, ds.NumColumns())
	for i, name := range ds.Columns {
		infos[i] = models.ColumnInfo{Name: name, Numeric: numeric[i]}
	}
	return infos
}

// Heatmap pivots the dataset: one row per distinct student, one column per
// distinct course, the final score in each cell. Rows with a blank student
// or course are skipped. When a (student, course) pair repeats the last row
// wins; a Final that is not a finite number leaves the cell missing.
func (a *Adapter) Heatmap(ds *models.Dataset) (models.Heatmap, error) {
	if err := a.require(ds, "heatmap", a.opts.Student, a.opts.Course, a.opts.Final); err != nil {
		return models.Heatmap{}, err
	}
	si := ds.ColumnIndex(a.opts.Student)
	ci := ds.ColumnIndex(a.opts.Course)
	fi := ds.ColumnIndex(a.opts.Final)

	type pair struct{ student, course string }
	cells := make(map[pair]float64)
	students := make(map[string]struct{})
	courses := make(map[string]struct{})

	for _, row := range ds.Rows {
		p := pair{row[si], row[ci]}
		if p.student == "" || p.course == "" {
			continue
		}
		students[p.student] = struct{}{}
		courses[p.course] = struct{}{}
		cells[p] = number(row[fi])
	}
	if len(cells) == 0 {
		return models.Heatmap{}, ErrEmpty
	}

	h := models.Heatmap{
		RowKey:    a.opts.Student,
		ColumnKey: a.opts.Course,
		ValueKey:  a.opts.Final,
		Rows:      sortedKeys(students),
		Columns:   sortedKeys(courses),
	}
	h.Values = make([][]float64, len(h.Rows))
	for r, student := range h.Rows {
		h.Values[r] = make([]float64, len(h.Columns))
		for c, course := range h.Columns {
			v, ok := cells[pair{student, course}]
			if !ok {
				v = math.NaN()
			}
			h.Values[r][c] = v
		}
	}
	return h, nil
}

// LineSeries pairs each row's position with the value of the nth numeric
// column (0-based, column order). Blank and infinite cells produce no point.
func (a *Adapter) LineSeries(ds *models.Dataset, n int) (models.LineSeries, error) {
	numeric := NumericColumns(ds)
	if n < 0 || n >= len(numeric) {
		return models.LineSeries{}, &ColumnIndexError{Index: n, Available: len(numeric)}
	}

	c := numeric[n]
	s := models.LineSeries{Index: n, Name: ds.Columns[c]}
	for i, v := range columnValues(ds, c) {
		if math.IsNaN(v) {
			continue
		}
		s.Points = append(s.Points, models.Point{X: i, Y: v})
	}
	return s, nil
}

// Pie counts rows per distinct grade, most frequent first; equal counts keep
// the order in which the grades first appear. Blank grades are not counted.
func (a *Adapter) Pie(ds *models.Dataset) (models.PieChart, error) {
	if err := a.require(ds, "pie chart", a.opts.Grade); err != nil {
		return models.PieChart{}, err
	}
	gi := ds.ColumnIndex(a.opts.Grade)

	pie := models.PieChart{Column: a.opts.Grade}
	index := make(map[string]int)
	for _, row := range ds.Rows {
		grade := row[gi]
		if grade == "" {
			continue
		}
		i, ok := index[grade]
		if !ok {
			i = len(pie.Slices)
			index[grade] = i
			pie.Slices = append(pie.Slices, models.Slice{Label: grade})
		}
		pie.Slices[i].Count++
	}
	if len(pie.Slices) == 0 {
		return models.PieChart{}, ErrEmpty
	}

	sort.SliceStable(pie.Slices, func(i, j int) bool {
		return pie.Slices[i].Count > pie.Slices[j].Count
	})
	return pie, nil
}

// Bar collects every numeric column's values in row order. Blank and
// infinite cells are stored as NaN.
func (a *Adapter) Bar(ds *models.Dataset) (models.BarChart, error) {
	numeric := NumericColumns(ds)
	if len(numeric) == 0 {
		return models.BarChart{}, ErrNoNumericColumns
	}

	bar := models.BarChart{Rows: ds.NumRows()}
	for _, c := range numeric {
		bar.Series = append(bar.Series, models.BarSeries{
			Name:   ds.Columns[c],
			Values: columnValues(ds, c),
		})
	}
	return bar, nil
}

func (a *Adapter) require(ds *models.Dataset, chart string, names ...string) error {
	var missing []string
	for _, name := range names {
		if !ds.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Chart: chart, Missing: missing}
	}
	return nil
}

// sortedKeys orders pivot labels. Labels that are all numbers sort
// numerically, anything else sorts as text.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	numeric := true
	for k := range set {
		keys = append(keys, k)
		if _, err := strconv.ParseFloat(k, 64); err != nil {
			numeric = false
		}
	}

	if numeric {
		sort.Slice(keys, func(i, j int) bool {
			x, _ := strconv.ParseFloat(keys[i], 64)
			y, _ := strconv.ParseFloat(keys[j], 64)
			if x != y {
				return x < y
			}
			return keys[i] < keys[j]
		})
	} else {
		sort.Strings(keys)
	}
	return keys
}

package render

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/parser"
)

const (
	DataSheet    = "Data"
	HeatmapSheet = "Heatmap"
	PieSheet     = "Pie"
	BarSheet     = "Bar"
)

// LineSheet names the sheet holding the nth line series.
func LineSheet(index int) string {
	return fmt.Sprintf("Line %d", index+1)
}

// XLSXSink collects charts into one workbook, each on its own sheet next to
// the values it plots. The workbook is written on Close.
type XLSXSink struct {
	opts   Options
	path   string
	f      *excelize.File
	sheets int
}

// NewXLSXSink creates a sink that collects charts into one workbook.
func NewXLSXSink(opts Options) *XLSXSink {
	opts = opts.withDefaults()
	return &XLSXSink{
		opts: opts,
		path: filepath.Join(opts.Dir, opts.Workbook),
		f:    excelize.NewFile(),
	}
}

// Path returns the workbook file name.
func (s *XLSXSink) Path() string {
	return s.path
}

// Data copies the dataset onto the Data sheet and sets it as the print area.
func (s *XLSXSink) Data(ds *models.Dataset) error {
	if err := s.sheet(DataSheet); err != nil {
		return err
	}
	for r, rec := range ds.Records() {
		row := make([]any, len(rec))
		for c, cell := range rec {
			row[c] = cellValue(cell, r == 0)
		}
		if err := s.setRow(DataSheet, 1, r+1, row); err != nil {
			return err
		}
	}

	area := models.PrintArea{R1: 1, C1: 1, R2: ds.NumRows() + 1, C2: max(ds.NumColumns(), 1)}
	ref, err := parser.PrintAreaReference(DataSheet, area)
	if err != nil {
		return err
	}
	return s.f.SetDefinedName(&excelize.DefinedName{
		Name:     parser.PrintAreaName,
		RefersTo: ref,
		Scope:    DataSheet,
	})
}

// Heatmap writes the pivot table with a three colour scale over its values.
func (s *XLSXSink) Heatmap(h models.Heatmap) error {
	if len(h.Rows) == 0 || len(h.Columns) == 0 {
		return fmt.Errorf("heatmap: %w", ErrNothingToDraw)
	}
	if err := s.sheet(HeatmapSheet); err != nil {
		return err
	}

	header := make([]any, 0, len(h.Columns)+1)
	header = append(header, h.RowKey)
	for _, c := range h.Columns {
		header = append(header, c)
	}
	if err := s.setRow(HeatmapSheet, 1, 1, header); err != nil {
		return err
	}
	for r, name := range h.Rows {
		row := make([]any, 0, len(h.Columns)+1)
		row = append(row, name)
		for c := range h.Columns {
			if v, ok := h.At(r, c); ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		if err := s.setRow(HeatmapSheet, 1, r+2, row); err != nil {
			return err
		}
	}

	first, err := excelize.CoordinatesToCellName(2, 2)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(h.Columns)+1, len(h.Rows)+1)
	if err != nil {
		return err
	}

	numFmt := "0.0"
	style, err := s.f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	if err := s.f.SetCellStyle(HeatmapSheet, first, last, style); err != nil {
		return err
	}

	return s.f.SetConditionalFormat(HeatmapSheet, first+":"+last, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MidValue: "50",
		MaxType:  "max",
		MinColor: scaleColor(0).Hex(),
		MidColor: scaleColor(0.5).Hex(),
		MaxColor: scaleColor(1).Hex(),
	}})
}

// Line writes the (row, value) pairs and a line chart over them.
func (s *XLSXSink) Line(ls models.LineSeries) error {
	if len(ls.Points) == 0 {
		return fmt.Errorf("line %q: %w", ls.Name, ErrNothingToDraw)
	}
	sheet := LineSheet(ls.Index)
	if err := s.sheet(sheet); err != nil {
		return err
	}

	if err := s.setRow(sheet, 1, 1, []any{"Row", ls.Name}); err != nil {
		return err
	}
	for i, p := range ls.Points {
		if err := s.setRow(sheet, 1, i+2, []any{p.X, p.Y}); err != nil {
			return err
		}
	}

	series, err := chartSeries(sheet, 2, 1, len(ls.Points))
	if err != nil {
		return err
	}
	return s.addChart(sheet, excelize.Line, ls.Name, []excelize.ChartSeries{series})
}

// Pie writes the value counts and a pie chart over them.
func (s *XLSXSink) Pie(p models.PieChart) error {
	if len(p.Slices) == 0 {
		return fmt.Errorf("pie chart: %w", ErrNothingToDraw)
	}
	if err := s.sheet(PieSheet); err != nil {
		return err
	}

	if err := s.setRow(PieSheet, 1, 1, []any{p.Column, "Count"}); err != nil {
		return err
	}
	for i, sl := range p.Slices {
		if err := s.setRow(PieSheet, 1, i+2, []any{sl.Label, sl.Count}); err != nil {
			return err
		}
	}

	series, err := chartSeries(PieSheet, 2, 1, len(p.Slices))
	if err != nil {
		return err
	}
	return s.addChart(PieSheet, excelize.Pie, p.Column, []excelize.ChartSeries{series})
}

// Bar writes one column per numeric series and a clustered column chart.
// Blank cells stay empty.
func (s *XLSXSink) Bar(b models.BarChart) error {
	if b.Rows == 0 || len(b.Series) == 0 {
		return fmt.Errorf("bar chart: %w", ErrNothingToDraw)
	}
	if err := s.sheet(BarSheet); err != nil {
		return err
	}

	header := []any{"Row"}
	for _, series := range b.Series {
		header = append(header, series.Name)
	}
	if err := s.setRow(BarSheet, 1, 1, header); err != nil {
		return err
	}
	for r := 0; r < b.Rows; r++ {
		row := []any{r}
		for _, series := range b.Series {
			if v := series.Values[r]; !math.IsNaN(v) {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		if err := s.setRow(BarSheet, 1, r+2, row); err != nil {
			return err
		}
	}

	all := make([]excelize.ChartSeries, len(b.Series))
	for i := range b.Series {
		series, err := chartSeries(BarSheet, i+2, 1, b.Rows)
		if err != nil {
			return err
		}
		all[i] = series
	}
	return s.addChart(BarSheet, excelize.Col, "Numeric columns", all)
}

// Close saves the workbook.
func (s *XLSXSink) Close() error {
	defer s.f.Close()
	if s.sheets == 0 {
		return fmt.Errorf("workbook: %w", ErrNothingToDraw)
	}
	if err := s.f.SaveAs(s.path); err != nil {
		return err
	}
	s.opts.Logger.Info("wrote workbook", "path", s.path, "sheets", s.sheets)
	return nil
}

// sheet creates a sheet, reusing the default one for the first.
func (s *XLSXSink) sheet(name string) error {
	if s.sheets > 0 {
		if idx, err := s.f.GetSheetIndex(name); err == nil && idx >= 0 {
			return fmt.Errorf("sheet %q already written", name)
		}
	}
	if s.sheets == 0 {
		s.sheets++
		return s.f.SetSheetName(s.f.GetSheetName(0), name)
	}
	if _, err := s.f.NewSheet(name); err != nil {
		return err
	}
	s.sheets++
	return nil
}

func (s *XLSXSink) setRow(sheet string, col, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return s.f.SetSheetRow(sheet, cell, &values)
}

func (s *XLSXSink) addChart(sheet string, typ excelize.ChartType, title string, series []excelize.ChartSeries) error {
	anchor, err := excelize.CoordinatesToCellName(len(series)+3, 2)
	if err != nil {
		return err
	}
	return s.f.AddChart(sheet, anchor, &excelize.Chart{
		Type:   typ,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{
			Width:  uint(s.opts.Width),
			Height: uint(s.opts.Height),
		},
	})
}

// chartSeries refers to the values in column col, rows 2..n+1, named by the
// header in row 1 and categorised by column catCol.
func chartSeries(sheet string, col, catCol, n int) (excelize.ChartSeries, error) {
	name, err := parser.PrintAreaReference(sheet, models.PrintArea{R1: 1, C1: col, R2: 1, C2: col})
	if err != nil {
		return excelize.ChartSeries{}, err
	}
	categories, err := parser.PrintAreaReference(sheet, models.PrintArea{R1: 2, C1: catCol, R2: n + 1, C2: catCol})
	if err != nil {
		return excelize.ChartSeries{}, err
	}
	values, err := parser.PrintAreaReference(sheet, models.PrintArea{R1: 2, C1: col, R2: n + 1, C2: col})
	if err != nil {
		return excelize.ChartSeries{}, err
	}
	return excelize.ChartSeries{Name: name, Categories: categories, Values: values}, nil
}

// cellValue stores numeric data cells as numbers so charts and formats
// apply; everything else stays text.
func cellValue(cell string, header bool) any {
	if header {
		return cell
	}
	if v := models.ParseValue(cell); v.Kind == models.KindNumber {
		return v.Number
	}
	return cell
}

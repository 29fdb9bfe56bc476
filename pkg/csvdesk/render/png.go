package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

// PNGSink writes each chart to its own PNG file.
type PNGSink struct {
	opts  Options
	files []string
}

// NewPNGSink creates the output directory and returns a sink writing into it.
func NewPNGSink(opts Options) (*PNGSink, error) {
	opts = opts.withDefaults()
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}
	return &PNGSink{opts: opts}, nil
}

// Files returns the paths written so far.
func (s *PNGSink) Files() []string {
	return append([]string(nil), s.files...)
}

// Close does nothing; every PNG is written as soon as it is drawn.
func (s *PNGSink) Close() error {
	return nil
}

// Heatmap draws the pivot as a grid of coloured cells, each labelled with
// its value to one decimal place. Missing cells are grey.
func (s *PNGSink) Heatmap(h models.Heatmap) error {
	if len(h.Rows) == 0 || len(h.Columns) == 0 {
		return fmt.Errorf("heatmap: %w", ErrNothingToDraw)
	}
	img := drawHeatmap(h)
	return s.write("heatmap.png", func(w io.Writer) error {
		return png.Encode(w, img)
	})
}

// Line writes line_<n>.png, n counting numeric columns from 1.
func (s *PNGSink) Line(ls models.LineSeries) error {
	if len(ls.Points) == 0 {
		return fmt.Errorf("line %q: %w", ls.Name, ErrNothingToDraw)
	}
	xs, ys := ls.XValues(), ls.YValues()
	col := drawingColor(seriesColor(ls.Index, 2))

	graph := chart.Chart{
		Title:      ls.Name,
		Width:      s.opts.Width,
		Height:     s.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Row", Range: paddedRange(xs, 0)},
		YAxis:      chart.YAxis{Name: ls.Name, Range: paddedRange(ys, 0.05)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    ls.Name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: col,
					StrokeWidth: 2,
					DotColor:    col,
					DotWidth:    3,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return s.write(fmt.Sprintf("line_%d.png", ls.Index+1), func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

// Pie writes pie.png.
func (s *PNGSink) Pie(p models.PieChart) error {
	if len(p.Slices) == 0 {
		return fmt.Errorf("pie chart: %w", ErrNothingToDraw)
	}
	values := make([]chart.Value, len(p.Slices))
	for i, sl := range p.Slices {
		col := drawingColor(seriesColor(i, len(p.Slices)))
		values[i] = chart.Value{
			Value: float64(sl.Count),
			Label: fmt.Sprintf("%s %.1f%%", sl.Label, p.Percent(i)),
			Style: chart.Style{FillColor: col, StrokeColor: drawing.ColorWhite, StrokeWidth: 1},
		}
	}

	graph := chart.PieChart{
		Title:  p.Column,
		Width:  s.opts.Width,
		Height: s.opts.Height,
		Values: values,
	}
	return s.write("pie.png", func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

// Bar groups the numeric columns row by row; blank cells are drawn as zero.
func (s *PNGSink) Bar(b models.BarChart) error {
	if b.Rows == 0 || len(b.Series) == 0 {
		return fmt.Errorf("bar chart: %w", ErrNothingToDraw)
	}

	names := make([]string, len(b.Series))
	colors := make([]drawing.Color, len(b.Series))
	for i, series := range b.Series {
		names[i] = series.Name
		colors[i] = drawingColor(seriesColor(i, len(b.Series)))
	}

	lo, hi := 0.0, 0.0
	bars := make([]chart.Value, 0, b.Rows*len(b.Series))
	for r := 0; r < b.Rows; r++ {
		for i, series := range b.Series {
			v := series.Values[r]
			if math.IsNaN(v) {
				v = 0
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)

			var label string
			if i == 0 {
				label = strconv.Itoa(r)
			}
			bars = append(bars, chart.Value{
				Value: v,
				Label: label,
				Style: chart.Style{FillColor: colors[i], StrokeColor: colors[i]},
			})
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	graph := chart.BarChart{
		Title:      strings.Join(names, ", "),
		Width:      s.opts.Width,
		Height:     s.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		BarSpacing: 2,
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: lo, Max: hi}},
		Bars:       bars,
	}
	if lo < 0 {
		graph.UseBaseValue = true
		graph.BaseValue = 0
	}
	return s.write("bar.png", func(w io.Writer) error {
		return graph.Render(chart.PNG, w)
	})
}

func (s *PNGSink) write(name string, encode func(io.Writer) error) error {
	path := filepath.Join(s.opts.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	s.files = append(s.files, path)
	s.opts.Logger.Info("wrote chart", "path", path)
	return nil
}

// paddedRange spans vs with frac of the span added on each side. A single
// value gets a unit span so the axis is never empty.
func paddedRange(vs []float64, frac float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi == lo {
		return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	pad := (hi - lo) * frac
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func drawingColor(c colorful.Color) drawing.Color {
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: 255}
}

const (
	cellHeight = 24
	cellPad    = 8
	titleSpace = 28
	legendSize = 28
)

var (
	missingColor = color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}
	gridColor    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func drawHeatmap(h models.Heatmap) *image.RGBA {
	face := basicfont.Face7x13
	textWidth := func(s string) int {
		return font.MeasureString(face, s).Ceil()
	}

	labelW := textWidth(h.RowKey)
	for _, r := range h.Rows {
		labelW = max(labelW, textWidth(r))
	}
	labelW += 2 * cellPad

	cellW := textWidth("000.0")
	for _, c := range h.Columns {
		cellW = max(cellW, textWidth(c))
	}
	cellW += 2 * cellPad

	title := fmt.Sprintf("%s by %s and %s", h.ValueKey, h.RowKey, h.ColumnKey)
	width := max(labelW+cellW*len(h.Columns), textWidth(title)) + cellPad
	height := titleSpace + cellHeight*(len(h.Rows)+1) + legendSize + cellPad

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawText(img, face, cellPad, titleSpace-cellPad, title, color.Black)

	top := titleSpace
	drawText(img, face, cellPad, top+cellHeight-cellPad, h.RowKey, color.Black)
	for c, name := range h.Columns {
		x := labelW + c*cellW + (cellW-textWidth(name))/2
		drawText(img, face, x, top+cellHeight-cellPad, name, color.Black)
	}

	lo, hi, ranged := h.Range()
	for r, name := range h.Rows {
		y := top + (r+1)*cellHeight
		drawText(img, face, cellPad, y+cellHeight-cellPad, name, color.Black)

		for c := range h.Columns {
			rect := image.Rect(labelW+c*cellW, y, labelW+(c+1)*cellW, y+cellHeight)
			v, ok := h.At(r, c)
			if !ok {
				draw.Draw(img, rect, image.NewUniform(missingColor), image.Point{}, draw.Src)
				continue
			}
			fill := valueColor(v, lo, hi)
			draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)

			var ink color.Color = color.White
			if isLight(fill) {
				ink = color.Black
			}
			label := h.Label(r, c)
			drawText(img, face, rect.Min.X+(cellW-textWidth(label))/2, rect.Max.Y-cellPad, label, ink)
		}
	}

	// Cell borders.
	gridBottom := top + cellHeight*(len(h.Rows)+1)
	for c := 0; c <= len(h.Columns); c++ {
		x := labelW + c*cellW
		draw.Draw(img, image.Rect(x, top+cellHeight, x+1, gridBottom), image.NewUniform(gridColor), image.Point{}, draw.Src)
	}

	if ranged {
		drawLegend(img, face, cellPad, gridBottom+cellPad, lo, hi)
	}
	return img
}

// drawLegend draws the colour scale with the value range at either end.
func drawLegend(img *image.RGBA, face font.Face, x, y int, lo, hi float64) {
	const stripW, stripH = 120, 10

	loLabel := fmt.Sprintf("%.1f", lo)
	drawText(img, face, x, y+stripH, loLabel, color.Black)
	x += font.MeasureString(face, loLabel).Ceil() + cellPad

	for i := 0; i < stripW; i++ {
		c := scaleColor(float64(i) / float64(stripW-1))
		draw.Draw(img, image.Rect(x+i, y, x+i+1, y+stripH), image.NewUniform(c), image.Point{}, draw.Src)
	}
	drawText(img, face, x+stripW+cellPad, y+stripH, fmt.Sprintf("%.1f", hi), color.Black)
}

func drawText(img *image.RGBA, face font.Face, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

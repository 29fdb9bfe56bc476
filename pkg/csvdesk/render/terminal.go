package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

const barWidth = 40

// TerminalSink prints charts as styled text.
type TerminalSink struct {
	out io.Writer
	r   *lipgloss.Renderer

	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
}

// NewTerminalSink creates a sink that prints to opts.Out.
func NewTerminalSink(opts Options) *TerminalSink {
	opts = opts.withDefaults()
	r := lipgloss.NewRenderer(opts.Out)
	return &TerminalSink{
		out:   opts.Out,
		r:     r,
		title: r.NewStyle().Bold(true).MarginBottom(1),
		label: r.NewStyle().Foreground(lipgloss.Color("245")),
		value: r.NewStyle().Foreground(lipgloss.Color("211")),
	}
}

// Close does nothing.
func (s *TerminalSink) Close() error {
	return nil
}

// Table prints the dataset with a leading row index column.
func (s *TerminalSink) Table(ds *models.Dataset) error {
	rows := make([][]string, len(ds.Rows))
	for i, row := range ds.Rows {
		rows[i] = append([]string{strconv.Itoa(i)}, row...)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.label).
		Headers(append([]string{""}, ds.Columns...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.r.NewStyle().Bold(true).Padding(0, 1)
			case col == 0:
				return s.label.Padding(0, 1)
			}
			return s.r.NewStyle().Padding(0, 1)
		})

	_, err := fmt.Fprintln(s.out, t.String())
	return err
}

// Heatmap prints the pivot as a table with each cell shaded by its value.
func (s *TerminalSink) Heatmap(h models.Heatmap) error {
	if len(h.Rows) == 0 || len(h.Columns) == 0 {
		return fmt.Errorf("heatmap: %w", ErrNothingToDraw)
	}

	lo, hi, _ := h.Range()
	rows := make([][]string, len(h.Rows))
	for r, name := range h.Rows {
		rows[r] = append([]string{name}, make([]string, len(h.Columns))...)
		for c := range h.Columns {
			rows[r][c+1] = s.heatCell(h, r, c, lo, hi)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.label).
		Headers(append([]string{h.RowKey}, h.Columns...)...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.r.NewStyle().Bold(true).Padding(0, 1)
			}
			return s.r.NewStyle()
		})

	return s.print(fmt.Sprintf("%s by %s and %s", h.ValueKey, h.RowKey, h.ColumnKey), t.String())
}

// heatCell shades one pivot cell by its value. Missing cells stay blank.
func (s *TerminalSink) heatCell(h models.Heatmap, r, c int, lo, hi float64) string {
	width := max(lipgloss.Width(h.Columns[c]), 5) + 2
	cell := s.r.NewStyle().Width(width).Padding(0, 1).Align(lipgloss.Right)

	v, ok := h.At(r, c)
	if !ok {
		return cell.Render("")
	}
	fill := valueColor(v, lo, hi)
	ink := lipgloss.Color("#ffffff")
	if isLight(fill) {
		ink = lipgloss.Color("#000000")
	}
	return cell.Background(lipgloss.Color(fill.Hex())).Foreground(ink).Render(h.Label(r, c))
}

// Line prints one bar per point, scaled to the series range.
func (s *TerminalSink) Line(ls models.LineSeries) error {
	if len(ls.Points) == 0 {
		return fmt.Errorf("line %q: %w", ls.Name, ErrNothingToDraw)
	}
	ys := ls.YValues()
	lo, hi := math.Min(0, minOf(ys)), maxOf(ys)

	labels := make([]string, len(ls.Points))
	for i, p := range ls.Points {
		labels[i] = strconv.Itoa(p.X)
	}
	return s.print(ls.Name, s.bars(labels, ys, lo, hi, seriesColor(ls.Index, 2).Hex()))
}

// Pie prints each slice with its count, share and a proportional bar.
func (s *TerminalSink) Pie(p models.PieChart) error {
	if len(p.Slices) == 0 {
		return fmt.Errorf("pie chart: %w", ErrNothingToDraw)
	}
	width := 0
	for _, sl := range p.Slices {
		width = max(width, lipgloss.Width(sl.Label))
	}

	var b strings.Builder
	for i, sl := range p.Slices {
		pct := p.Percent(i)
		n := int(math.Round(pct / 100 * barWidth))
		block := s.r.NewStyle().Foreground(lipgloss.Color(seriesColor(i, len(p.Slices)).Hex())).Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%s %s %s %s\n",
			s.label.Width(width).Render(sl.Label),
			block,
			s.value.Render(strconv.Itoa(sl.Count)),
			s.label.Render(fmt.Sprintf("(%.1f%%)", pct)),
		)
	}
	return s.print(p.Column, strings.TrimRight(b.String(), "\n"))
}

// Bar prints each numeric column as a block of bars; blanks draw as zero.
func (s *TerminalSink) Bar(bc models.BarChart) error {
	if bc.Rows == 0 || len(bc.Series) == 0 {
		return fmt.Errorf("bar chart: %w", ErrNothingToDraw)
	}

	lo, hi := 0.0, 0.0
	for _, series := range bc.Series {
		for _, v := range series.Values {
			if !math.IsNaN(v) {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}

	labels := make([]string, bc.Rows)
	for r := range labels {
		labels[r] = strconv.Itoa(r)
	}

	blocks := make([]string, len(bc.Series))
	for i, series := range bc.Series {
		values := make([]float64, len(series.Values))
		for r, v := range series.Values {
			if math.IsNaN(v) {
				v = 0
			}
			values[r] = v
		}
		body := s.bars(labels, values, lo, hi, seriesColor(i, len(bc.Series)).Hex())
		blocks[i] = s.title.Render(series.Name) + "\n" + body
	}
	return s.print("Numeric columns", strings.Join(blocks, "\n\n"))
}

// bars renders one labelled horizontal bar per value, measured from lo.
func (s *TerminalSink) bars(labels []string, values []float64, lo, hi float64, hex string) string {
	width := 0
	for _, l := range labels {
		width = max(width, lipgloss.Width(l))
	}
	fill := s.r.NewStyle().Foreground(lipgloss.Color(hex))

	lines := make([]string, len(values))
	for i, v := range values {
		n := 0
		if f := (v - lo) / (hi - lo); hi > lo && f > 0 && f <= 1 {
			n = int(math.Round(f * barWidth))
		}
		lines[i] = fmt.Sprintf("%s %s %s",
			s.label.Width(width).Align(lipgloss.Right).Render(labels[i]),
			fill.Render(strings.Repeat("█", n)),
			s.value.Render(strconv.FormatFloat(v, 'f', -1, 64)),
		)
	}
	return strings.Join(lines, "\n")
}

func (s *TerminalSink) print(title, body string) error {
	_, err := fmt.Fprintln(s.out, lipgloss.JoinVertical(lipgloss.Left, s.title.Render(title), body))
	return err
}

func minOf(vs []float64) float64 {
	m := math.Inf(1)
	for _, v := range vs {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := math.Inf(-1)
	for _, v := range vs {
		m = math.Max(m, v)
	}
	return m
}

// Package render draws prepared chart data onto an output surface: PNG
// files, an xlsx workbook with native charts, or styled terminal text.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

var (
	// ErrUnknownFormat indicates an output format this package cannot produce.
	ErrUnknownFormat = errors.New("unknown render format")
	// ErrNothingToDraw indicates a chart with no values.
	ErrNothingToDraw = errors.New("nothing to draw")
)

// Sink is a rendering surface. Each call draws one chart and returns once
// the output has been written; Close flushes anything buffered.
type Sink interface {
	Heatmap(h models.Heatmap) error
	Line(s models.LineSeries) error
	Pie(p models.PieChart) error
	Bar(b models.BarChart) error
	Close() error
}

// DataWriter is implemented by sinks that can carry the dataset itself
// next to its charts.
type DataWriter interface {
	Data(ds *models.Dataset) error
}

// Format selects a Sink implementation.
type Format string

const (
	FormatPNG      Format = "png"
	FormatXLSX     Format = "xlsx"
	FormatTerminal Format = "terminal"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPNG, FormatXLSX, FormatTerminal}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options configures a Sink.
type Options struct {
	// Dir receives PNG files and the workbook.
	Dir string
	// Workbook is the xlsx file name inside Dir.
	Workbook string
	// Width and Height size PNG images in pixels.
	Width  int
	Height int
	// Out receives terminal output. Defaults to stdout.
	Out io.Writer
	// Logger reports written files. Defaults to discarding.
	Logger *log.Logger
}

// DefaultOptions returns options writing into the current directory.
func DefaultOptions() Options {
	return Options{
		Dir:      ".",
		Workbook: "charts.xlsx",
		Width:    800,
		Height:   500,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Dir == "" {
		o.Dir = def.Dir
	}
	if o.Workbook == "" {
		o.Workbook = def.Workbook
	}
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// New creates the Sink for format.
func New(format Format, opts Options) (Sink, error) {
	opts = opts.withDefaults()
	switch format {
	case FormatPNG:
		s, err := NewPNGSink(opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case FormatXLSX:
		return NewXLSXSink(opts), nil
	case FormatTerminal:
		return NewTerminalSink(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

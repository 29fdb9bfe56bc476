// Package csvdesk holds the tabular store: a single in-memory dataset loaded
// from CSV (or XLSX), its mutation operations and the session that owns it.
package csvdesk

import (
	"path/filepath"
	"strings"
)

// Format identifies a dataset file format.
type Format string

const (
	// FormatCSV is delimited text with a header record.
	FormatCSV Format = "csv"
	// FormatXLSX is an Office Open XML workbook; only loading is supported.
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the format from the file extension. Anything that is
// not .xlsx is treated as delimited text.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Options configures how datasets are read and written.
type Options struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
	// LazyQuotes lets a quote appear in an unquoted field.
	LazyQuotes bool
	// TrimLeadingSpace ignores leading white space in a field.
	TrimLeadingSpace bool
	// Sheet names the worksheet to load from a workbook.
	// If empty, the first sheet is used.
	Sheet string
}

// DefaultOptions returns options for standard comma-separated files.
func DefaultOptions() Options {
	return Options{
		Delimiter: ',',
	}
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

package chart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumns indicates columns a chart requires are absent.
	ErrMissingColumns = errors.New("required columns not found")
	// ErrInvalidColumnIndex indicates the requested numeric column does not exist.
	ErrInvalidColumnIndex = errors.New("invalid column index")
	// ErrNoNumericColumns indicates the dataset has no numeric column to plot.
	ErrNoNumericColumns = errors.New("no numeric columns to visualize")
	// ErrEmpty indicates the chart would have nothing to draw.
	ErrEmpty = errors.New("no values to chart")
)

// MissingColumnsError reports which required columns a chart could not find.
type MissingColumnsError struct {
	Chart   string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return fmt.Sprintf("%s: %v: %s", e.Chart, ErrMissingColumns, strings.Join(quoted, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// ColumnIndexError reports a numeric column index beyond the numeric columns present.
type ColumnIndexError struct {
	Index     int
	Available int
}

func (e *ColumnIndexError) Error() string {
	return fmt.Sprintf("%v: %d (dataset has %d numeric columns)", ErrInvalidColumnIndex, e.Index, e.Available)
}

func (e *ColumnIndexError) Unwrap() error {
	return ErrInvalidColumnIndex
}

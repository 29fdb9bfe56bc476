package csvdesk

import (
	"errors"
	"fmt"
)

var (
	// ErrIO indicates a file could not be opened, read or written.
	ErrIO = errors.New("i/o error")
	// ErrParse indicates the input is not valid delimited text.
	ErrParse = errors.New("malformed input")
	// ErrColumnCountMismatch indicates a row's value count differs from the column count.
	ErrColumnCountMismatch = errors.New("value count does not match column count")
	// ErrDuplicateColumn indicates a column with the same name already exists.
	ErrDuplicateColumn = errors.New("column already exists")
	// ErrEmptyColumnName indicates a column was given no name.
	ErrEmptyColumnName = errors.New("column name is empty")
	// ErrEmptyRow indicates row text with no values in it.
	ErrEmptyRow = errors.New("row has no values")
	// ErrIndexOutOfRange indicates a row index outside the dataset.
	ErrIndexOutOfRange = errors.New("row index out of range")
	// ErrUnknownColumn indicates the named column does not exist.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrNoData indicates an operation ran before any dataset was loaded.
	ErrNoData = errors.New("no data loaded")
)

// FileError reports a failure opening, reading or writing a file.
type FileError struct {
	Op   string // "open", "read", "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrIO) match any FileError.
func (e *FileError) Is(target error) bool {
	return target == ErrIO
}

// ParseError reports input that could not be decoded into a dataset.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parse: %v", e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ColumnCountError reports an add-row whose arity does not match.
type ColumnCountError struct {
	Expected int
	Actual   int
}

func (e *ColumnCountError) Error() string {
	return fmt.Sprintf("%v: expected %d values, got %d", ErrColumnCountMismatch, e.Expected, e.Actual)
}

func (e *ColumnCountError) Unwrap() error {
	return ErrColumnCountMismatch
}

// RowIndexError reports a row index outside [0, Rows).
type RowIndexError struct {
	Index int
	Rows  int
}

func (e *RowIndexError) Error() string {
	return fmt.Sprintf("%v: %d not in [0, %d)", ErrIndexOutOfRange, e.Index, e.Rows)
}

func (e *RowIndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// ColumnError reports a problem with a named column.
type ColumnError struct {
	Column string
	Err    error // ErrUnknownColumn, ErrDuplicateColumn or ErrEmptyColumnName
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Column)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// NewColumnError creates a new ColumnError.
func NewColumnError(column string, err error) *ColumnError {
	return &ColumnError{
		Column: column,
		Err:    err,
	}
}

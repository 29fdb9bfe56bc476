package csvdesk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/parser"
)

const utf8BOM = "\ufeff"

// Load reads a dataset from a file. The first record is the header.
// Workbooks (.xlsx) are read through the parser package; everything else
// is treated as delimited text.
func Load(path string, opts Options) (*models.Dataset, error) {
	if FormatFromPath(path) == FormatXLSX {
		records, err := parser.ReadSheet(path, opts.Sheet)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
				return nil, &FileError{Op: "open", Path: path, Err: err}
			}
			return nil, &ParseError{Path: path, Err: err}
		}
		ds, err := fromRecords(records)
		if err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
		return ds, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	ds, err := Read(f, opts)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		var ferr *FileError
		if errors.As(err, &ferr) {
			ferr.Path = path
		}
		return nil, err
	}
	return ds, nil
}

// Read decodes delimited text into a dataset.
func Read(r io.Reader, opts Options) (*models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.delimiter()
	cr.LazyQuotes = opts.LazyQuotes
	cr.TrimLeadingSpace = opts.TrimLeadingSpace

	records, err := cr.ReadAll()
	if err != nil {
		var csvErr *csv.ParseError
		if errors.As(err, &csvErr) {
			return nil, &ParseError{Err: err}
		}
		return nil, &FileError{Op: "read", Err: err}
	}

	ds, err := fromRecords(records)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return ds, nil
}

// fromRecords builds a dataset from a header record followed by rows.
func fromRecords(records [][]string) (*models.Dataset, error) {
	if len(records) == 0 {
		return nil, errors.New("no header record")
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	seen := make(map[string]bool, len(header))
	for i, name := range header {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
			header[i] = name
		}
		if seen[name] {
			return nil, NewColumnError(name, ErrDuplicateColumn)
		}
		seen[name] = true
	}

	ds := models.NewDataset(header)
	for i, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("record %d: %w", i+1, &ColumnCountError{Expected: len(header), Actual: len(rec)})
		}
		ds.Rows = append(ds.Rows, rec)
	}
	return ds, nil
}

// Save writes the dataset to path as delimited text, header first, in the
// stored column order and without an index column. The file is written to a
// temporary sibling and renamed into place, so a failed save leaves any
// existing file untouched.
func Save(ds *models.Dataset, path string, opts Options) error {
	if FormatFromPath(path) == FormatXLSX {
		return &FileError{Op: "write", Path: path, Err: errors.New("saving workbooks is not supported; export with the xlsx renderer")}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return &FileError{Op: "write", Path: path, Err: err}
	}

	if err := Write(ds, tmp, opts); err != nil {
		tmp.Close()
		var ferr *FileError
		if errors.As(err, &ferr) {
			ferr.Path = path
		}
		return err
	}
	if err := tmp.Close(); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Write encodes the dataset as delimited text.
func Write(ds *models.Dataset, w io.Writer, opts Options) error {
	cw := csv.NewWriter(w)
	cw.Comma = opts.delimiter()

	if err := cw.Write(ds.Columns); err != nil {
		return &FileError{Op: "write", Err: err}
	}
	if err := cw.WriteAll(ds.Rows); err != nil {
		return &FileError{Op: "write", Err: err}
	}
	return nil
}

// AddRow appends a row. The value count must equal the column count;
// otherwise the dataset is left unchanged and a *ColumnCountError is returned.
func AddRow(ds *models.Dataset, values []string) error {
	if len(values) != ds.NumColumns() {
		return &ColumnCountError{Expected: ds.NumColumns(), Actual: len(values)}
	}
	ds.Rows = append(ds.Rows, append([]string(nil), values...))
	return nil
}

// AddColumn appends a column holding def in every existing row.
// Names must be non-empty and unique: an existing name is rejected with
// ErrDuplicateColumn.
func AddColumn(ds *models.Dataset, name, def string) error {
	if name == "" {
		return NewColumnError(name, ErrEmptyColumnName)
	}
	if ds.HasColumn(name) {
		return NewColumnError(name, ErrDuplicateColumn)
	}
	ds.Columns = append(ds.Columns, name)
	for i := range ds.Rows {
		ds.Rows[i] = append(ds.Rows[i], def)
	}
	return nil
}

// EditCell replaces the cell at (row, column). Rows are 0-based.
func EditCell(ds *models.Dataset, row int, column, value string) error {
	if row < 0 || row >= ds.NumRows() {
		return &RowIndexError{Index: row, Rows: ds.NumRows()}
	}
	col := ds.ColumnIndex(column)
	if col < 0 {
		return NewColumnError(column, ErrUnknownColumn)
	}
	ds.Rows[row][col] = value
	return nil
}

// Columns returns a copy of the column names in order.
func Columns(ds *models.Dataset) []string {
	return append([]string(nil), ds.Columns...)
}

// SplitValues splits row text typed by a user on commas. Values are not
// trimmed, so "a, b" yields "a" and " b".
func SplitValues(text string) []string {
	return strings.Split(text, ",")
}

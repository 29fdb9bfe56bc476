// Package models defines the data structures shared by the store, the chart
// adapter and the renderers.
package models

// Dataset is an in-memory table: ordered, unique column names and rows whose
// cells are aligned positionally with the columns. Cells are kept as text.
type Dataset struct {
	// Columns holds the header names in file order.
	Columns []string `json:"columns"`
	// Rows holds the records; len(row) == len(Columns) for every row.
	Rows [][]string `json:"rows"`
}

// NewDataset returns an empty dataset with the given header.
func NewDataset(columns []string) *Dataset {
	return &Dataset{
		Columns: append([]string(nil), columns...),
		Rows:    [][]string{},
	}
}

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int {
	return len(d.Columns)
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Column returns a copy of the named column's cells in row order.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	return d.ColumnAt(idx), true
}

// ColumnAt returns a copy of the cells of the column at idx in row order.
func (d *Dataset) ColumnAt(idx int) []string {
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values
}

// Records returns the header followed by every row, the shape CSV writers
// and dataframe loaders expect. The slices are shared, not copied.
func (d *Dataset) Records() [][]string {
	records := make([][]string, 0, len(d.Rows)+1)
	records = append(records, d.Columns)
	records = append(records, d.Rows...)
	return records
}

// Clone returns a deep copy.
func (d *Dataset) Clone() *Dataset {
	c := &Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([][]string, len(d.Rows)),
	}
	for i, row := range d.Rows {
		c.Rows[i] = append([]string(nil), row...)
	}
	return c
}

// ColumnInfo names a column and whether its values are numeric.
type ColumnInfo struct {
	Name    string `json:"name"`
	Numeric bool   `json:"numeric"`
}

// Kind returns "numeric" or "text".
func (c ColumnInfo) Kind() string {
	if c.Numeric {
		return "numeric"
	}
	return "text"
}

package csvdesk_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/csvdesk/pkg/csvdesk"
	"github.com/ukaji3/csvdesk/pkg/csvdesk/models"
)

const gradesCSV = `Student,Course,Final,Grade
Al,Math,90,A
Al,Sci,80,B
"Bo, Jr.",Math,75.5,C
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	ds, err := csvdesk.Load(writeFile(t, "grades.csv", gradesCSV), csvdesk.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Student", "Course", "Final", "Grade"}, ds.Columns)
	require.Equal(t, 3, ds.NumRows())
	assert.Equal(t, []string{"Bo, Jr.", "Math", "75.5", "C"}, ds.Rows[2])
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		is      error
	}{
		{
			name:    "ragged row",
			content: "a,b\n1,2,3\n",
			is:      csvdesk.ErrParse,
		},
		{
			name:    "bare quote",
			content: "a,b\n1,\"x\"y\n",
			is:      csvdesk.ErrParse,
		},
		{
			name:    "empty file",
			content: "",
			is:      csvdesk.ErrParse,
		},
		{
			name:    "duplicate header",
			content: "a,a\n1,2\n",
			is:      csvdesk.ErrDuplicateColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)

			_, err := csvdesk.Load(path, csvdesk.DefaultOptions())
			require.ErrorIs(t, err, tt.is)

			var perr *csvdesk.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, path, perr.Path)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	_, err := csvdesk.Load(path, csvdesk.DefaultOptions())
	require.ErrorIs(t, err, csvdesk.ErrIO)
	require.ErrorIs(t, err, os.ErrNotExist)

	var ferr *csvdesk.FileError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "open", ferr.Op)
}

func TestRead_HeaderNormalisation(t *testing.T) {
	ds, err := csvdesk.Read(strings.NewReader("\ufeffName,,Score\nx,y,1\n"), csvdesk.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Unnamed: 1", "Score"}, ds.Columns)
}

func TestRead_Delimiter(t *testing.T) {
	opts := csvdesk.DefaultOptions()
	opts.Delimiter = ';'
	opts.TrimLeadingSpace = true

	ds, err := csvdesk.Read(strings.NewReader("a; b\n1; 2\n"), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, ds.Columns)
	assert.Equal(t, [][]string{{"1", "2"}}, ds.Rows)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := writeFile(t, "grades.csv", gradesCSV)
	ds, err := csvdesk.Load(src, csvdesk.DefaultOptions())
	require.NoError(t, err)

	dst := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, csvdesk.Save(ds, dst, csvdesk.DefaultOptions()))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, gradesCSV, string(data))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	back, err := csvdesk.Load(dst, csvdesk.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, ds, back)
}

func TestSave_Errors(t *testing.T) {
	ds := models.NewDataset([]string{"a"})

	err := csvdesk.Save(ds, filepath.Join(t.TempDir(), "missing", "out.csv"), csvdesk.DefaultOptions())
	require.ErrorIs(t, err, csvdesk.ErrIO)

	err = csvdesk.Save(ds, filepath.Join(t.TempDir(), "out.xlsx"), csvdesk.DefaultOptions())
	require.ErrorIs(t, err, csvdesk.ErrIO)
}

func TestSave_KeepsExistingFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grades.csv")
	require.NoError(t, os.WriteFile(path, []byte(gradesCSV), 0o600))

	ds := models.NewDataset([]string{"a"})
	ds.Rows = append(ds.Rows, []string{"x"})

	opts := csvdesk.DefaultOptions()
	opts.Delimiter = '\n'
	require.Error(t, csvdesk.Save(ds, path, opts))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, gradesCSV, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddRow(t *testing.T) {
	ds, err := csvdesk.Read(strings.NewReader(gradesCSV), csvdesk.DefaultOptions())
	require.NoError(t, err)

	values := []string{"Cy", "Art", "60", "D"}
	require.NoError(t, csvdesk.AddRow(ds, values))
	assert.Equal(t, 4, ds.NumRows())
	assert.Equal(t, values, ds.Rows[3])

	values[0] = "changed"
	assert.Equal(t, "Cy", ds.Rows[3][0])
}

func TestAddRow_Mismatch(t *testing.T) {
	ds, err := csvdesk.Read(strings.NewReader(gradesCSV), csvdesk.DefaultOptions())
	require.NoError(t, err)
	before := ds.Clone()

	err = csvdesk.AddRow(ds, []string{"Cy", "Art"})
	require.ErrorIs(t, err, csvdesk.ErrColumnCountMismatch)

	var cerr *csvdesk.ColumnCountError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 4, cerr.Expected)
	assert.Equal(t, 2, cerr.Actual)
	assert.Equal(t, before, ds)
}

func TestAddColumn(t *testing.T) {
	ds, err := csvdesk.Read(strings.NewReader(gradesCSV), csvdesk.DefaultOptions())
	require.NoError(t, err)

	require.NoError(t, csvdesk.AddColumn(ds, "Notes", ""))
	assert.Equal(t, 5, ds.NumColumns())
	assert.Equal(t, 3, ds.NumRows())
	for _, row := range ds.Rows {
		require.Len(t, row, 5)
		assert.Empty(t, row[4])
	}

	require.NoError(t, csvdesk.AddColumn(ds, "Term", "2024"))
	col, ok := ds.Column("Term")
	require.True(t, ok)
	assert.Equal(t, []string{"2024", "2024", "2024"}, col)
}

func TestAddColumn_Duplicate(t *testing.T) {
	ds, err := csvdesk.Read(strings.NewReader(gradesCSV), csvdesk.DefaultOptions())
	require.NoError(t, err)
	before := ds.Clone()

	err = csvdesk.AddColumn(ds, "Grade", "x")
	require.ErrorIs(t, err, csvdesk.ErrDuplicateColumn)

	var cerr *csvdesk.ColumnError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "Grade", cerr.Column)
	assert.Equal(t, before, ds)
}

func TestEditCell(t *testing.T) {
	ds, err := csvdesk.Read(strings.NewReader(gradesCSV), csvdesk.DefaultOptions())
	require.NoError(t, err)
	want := ds.Clone()
	want.Rows[1][2] = "85"

	require.NoError(t, csvdesk.EditCell(ds, 1, "Final", "85"))
	assert.Equal(t, want, ds)
}

func TestEditCell_Errors(t *testing.T) {
	ds, err := csvdesk.Read(strings.NewReader(gradesCSV), csvdesk.DefaultOptions())
	require.NoError(t, err)
	before := ds.Clone()

	err = csvdesk.EditCell(ds, 3, "Final", "1")
	require.ErrorIs(t, err, csvdesk.ErrIndexOutOfRange)

	var rerr *csvdesk.RowIndexError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 3, rerr.Rows)

	err = csvdesk.EditCell(ds, -1, "Final", "1")
	require.ErrorIs(t, err, csvdesk.ErrIndexOutOfRange)

	err = csvdesk.EditCell(ds, 0, "Midterm", "1")
	require.ErrorIs(t, err, csvdesk.ErrUnknownColumn)

	assert.Equal(t, before, ds)
}

func TestColumns(t *testing.T) {
	ds := models.NewDataset([]string{"a", "b"})

	cols := csvdesk.Columns(ds)
	cols[0] = "z"
	assert.Equal(t, []string{"a", "b"}, ds.Columns)
}

func TestSplitValues(t *testing.T) {
	assert.Equal(t, []string{"a", " b", ""}, csvdesk.SplitValues("a, b,"))
	assert.Equal(t, []string{""}, csvdesk.SplitValues(""))
}

func TestLoad_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "B2", &[]any{"Student", "Course", "Final"}))
	require.NoError(t, f.SetSheetRow(sheet, "B3", &[]any{"Al", "Math", 90}))
	require.NoError(t, f.SetSheetRow(sheet, "B4", &[]any{"Bo", "Sci", 72.5}))

	path := filepath.Join(t.TempDir(), "grades.xlsx")
	require.NoError(t, f.SaveAs(path))

	ds, err := csvdesk.Load(path, csvdesk.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Student", "Course", "Final"}, ds.Columns)
	assert.Equal(t, [][]string{{"Al", "Math", "90"}, {"Bo", "Sci", "72.5"}}, ds.Rows)

	opts := csvdesk.DefaultOptions()
	opts.Sheet = "Missing"
	_, err = csvdesk.Load(path, opts)
	require.ErrorIs(t, err, csvdesk.ErrParse)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, csvdesk.FormatXLSX, csvdesk.FormatFromPath("a/B.XLSX"))
	assert.Equal(t, csvdesk.FormatCSV, csvdesk.FormatFromPath("a/b.csv"))
	assert.Equal(t, csvdesk.FormatCSV, csvdesk.FormatFromPath("noext"))
}

func TestAddColumn_EmptyName(t *testing.T) {
	ds, err := csvdesk.Read(strings.NewReader(gradesCSV), csvdesk.DefaultOptions())
	require.NoError(t, err)
	before := ds.Clone()

	err = csvdesk.AddColumn(ds, "", "x")
	require.ErrorIs(t, err, csvdesk.ErrEmptyColumnName)

	var cerr *csvdesk.ColumnError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, before, ds)
}

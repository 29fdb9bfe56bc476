package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExtractCharts(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Grade", "Count"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"A", 3}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"B", 1}))
	require.NoError(t, f.AddChart("Sheet1", "D2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       "Sheet1!$B$1",
			Categories: "Sheet1!$A$2:$A$3",
			Values:     "Sheet1!$B$2:$B$3",
		}},
		Title: []excelize.RichTextRun{{Text: "Grade Distribution"}},
	}))
	path := saveWorkbook(t, f)

	wb, err := ExtractCharts(path)
	require.NoError(t, err)

	assert.Equal(t, "test.xlsx", wb.BookName)
	charts := wb.Sheets["Sheet1"]
	require.Len(t, charts, 1)
	assert.Equal(t, "Pie", charts[0].ChartType)
	assert.Equal(t, "Grade Distribution", charts[0].Title)
	require.Len(t, charts[0].Series, 1)
	assert.Equal(t, "Sheet1!$A$2:$A$3", charts[0].Series[0].XRange)
	assert.Equal(t, "Sheet1!$B$2:$B$3", charts[0].Series[0].YRange)
}

func TestExtractCharts_NoCharts(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	path := saveWorkbook(t, f)

	wb, err := ExtractCharts(path)
	require.NoError(t, err)
	assert.Empty(t, wb.Sheets)
}

func TestResolveTarget(t *testing.T) {
	assert.Equal(t, "xl/charts/chart1.xml", resolveTarget("xl/drawings/", "../charts/chart1.xml"))
	assert.Equal(t, "xl/worksheets/sheet1.xml", resolveTarget("xl/", "worksheets/sheet1.xml"))
	assert.Equal(t, "xl/worksheets/sheet1.xml", resolveTarget("xl/", "/xl/worksheets/sheet1.xml"))
}

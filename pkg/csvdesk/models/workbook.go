package models

// ChartSeries describes the ranges one series of a workbook chart reads.
type ChartSeries struct {
	// Name is the series display name or the reference holding it.
	Name string `json:"name"`
	// XRange is the range reference for categories.
	XRange string `json:"x_range,omitempty"`
	// YRange is the range reference for values.
	YRange string `json:"y_range,omitempty"`
}

// Chart describes a chart embedded in a workbook.
type Chart struct {
	// Name is the drawing object name.
	Name string `json:"name"`
	// ChartType is the chart type (e.g., Line, Pie, Bar).
	ChartType string `json:"chart_type"`
	// Title is the chart title.
	Title  string        `json:"title,omitempty"`
	Series []ChartSeries `json:"series"`
}

// WorkbookCharts maps each sheet of a workbook to the charts it holds.
type WorkbookCharts struct {
	// BookName is the workbook file name (no path).
	BookName string             `json:"book_name"`
	Sheets   map[string][]Chart `json:"sheets"`
}

// Package main provides the CLI entry point for csvdesk.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ukaji3/csvdesk/internal/cli"
)

const (
	cmdName = "csvdesk"

	shortDesc = "Edit a CSV dataset and chart it"
	longDesc  = `csvdesk loads one CSV (or XLSX) dataset, edits it in place and draws charts
from it: a heatmap of Final scores by Student and Course, line charts of the
numeric columns, a pie chart of Grades and a bar chart of every numeric column.

Charts are written as PNG files, as an xlsx workbook with native charts, or
printed to the terminal.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}

package models

import "fmt"

// PrintArea represents cell coordinate bounds for a print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows covered.
func (a PrintArea) Rows() int {
	return a.R2 - a.R1 + 1
}

// Cols returns the number of columns covered.
func (a PrintArea) Cols() int {
	return a.C2 - a.C1 + 1
}

func (a PrintArea) String() string {
	return fmt.Sprintf("R%dC%d:R%dC%d", a.R1, a.C1, a.R2, a.C2)
}

package models

import (
	"math"
	"strconv"
)

// Kind tags how a cell's text was interpreted.
type Kind int

const (
	// KindEmpty marks a blank or NaN cell.
	KindEmpty Kind = iota
	// KindNumber marks a cell that parses as an integer or float.
	KindNumber
	// KindText marks any other cell.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	default:
		return "text"
	}
}

// Value is a cell resolved for charting. Storage never holds Values; the
// chart adapter parses them from the stored text when it needs numbers.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
}

// ParseValue interprets a cell's text.
// Integers are tried first, then floats; blank and "NaN" cells are empty.
func ParseValue(s string) Value {
	if s == "" || s == "NaN" {
		return Value{Kind: KindEmpty, Text: s, Number: math.NaN()}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{Kind: KindNumber, Text: s, Number: float64(i)}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Value{Kind: KindNumber, Text: s, Number: f}
	}
	return Value{Kind: KindText, Text: s, Number: math.NaN()}
}

// Float returns the numeric value and whether the cell held a number.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber {
		return math.NaN(), false
	}
	return v.Number, true
}

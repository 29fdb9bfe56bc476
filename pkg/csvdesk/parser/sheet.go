package parser

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrEmptySheet indicates the worksheet holds no table.
var ErrEmptySheet = errors.New("sheet has no data")

// ReadSheet returns the records of one worksheet, header first.
// An empty sheetName selects the first sheet. The region read is the sheet's
// print area when one is defined, otherwise the bounding box of its data.
func ReadSheet(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetList()[0]
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	rows, err := ExtractRows(f, sheetName)
	if err != nil {
		return nil, err
	}

	if areas := ExtractPrintAreas(f)[sheetName]; len(areas) > 0 {
		return crop(rows, areas[0]), nil
	}

	area, ok := DetectTable(rows, DefaultTableParams())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrEmptySheet, sheetName)
	}
	return crop(rows, area), nil
}

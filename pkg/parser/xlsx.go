package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var zipMagic = []byte("PK\x03\x04")

// isXLSX reports whether the blob is a zip container, which is how workbook
// exports arrive when an upstream system is set to spreadsheet output.
func isXLSX(data []byte) bool {
	return bytes.HasPrefix(data, zipMagic)
}

// readXLSXGrid returns the rows of the first non-empty sheet.
func readXLSXGrid(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		var grid [][]string
		for _, row := range rows {
			if !isBlankRow(row) {
				grid = append(grid, row)
			}
		}
		if len(grid) > 0 {
			return grid, nil
		}
	}
	return nil, ErrEmptyInput
}

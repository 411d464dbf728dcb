package csvio

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX serializes rows to w as a single-sheet workbook using the same
// column descriptors and header humanization as WriteCSV. An empty row set
// yields ErrNoData.
func WriteXLSX(w io.Writer, sheet string, columns []Column, rows []map[string]any) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
	}

	for i, c := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, c.header()); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for r, row := range rows {
		for i, c := range columns {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, c.value(row)); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

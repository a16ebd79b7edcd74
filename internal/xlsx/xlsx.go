// Package xlsx reads and writes Excel workbooks through excelize, exposing
// them as plain sheet-name/row-grid pairs for the converters.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet's cell grid.
type Sheet struct {
	Name string
	Rows [][]string
}

// ReadSheets loads every worksheet in the workbook. A worksheet that fails
// to read is returned in failed rather than aborting the whole workbook, so
// callers can report partial success.
func ReadSheets(path string) (sheets []Sheet, failed []string, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			failed = append(failed, name)
			continue
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, failed, nil
}

// WriteSheet creates a workbook with a single worksheet holding the given
// rows. Column widths (in points) are translated to Excel's character-based
// width units when provided.
func WriteSheet(path, sheetName string, rows [][]string, colWidthsPt []float64) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming worksheet: %w", err)
	}

	for ri, row := range rows {
		for ci, cell := range row {
			ref, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			if err != nil {
				return fmt.Errorf("cell reference (%d,%d): %w", ci+1, ri+1, err)
			}
			if err := f.SetCellValue(sheetName, ref, cell); err != nil {
				return fmt.Errorf("setting cell %s: %w", ref, err)
			}
		}
	}

	for ci, w := range colWidthsPt {
		col, err := excelize.ColumnNumberToName(ci + 1)
		if err != nil {
			continue
		}
		// Excel column width is in characters of the default font,
		// roughly 7pt per character.
		if err := f.SetColWidth(sheetName, col, col, w/7); err != nil {
			return fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

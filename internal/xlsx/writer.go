package xlsx

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ErrStyling marks a cosmetic failure (column widths, header fill) on an
// otherwise successfully written file. Callers may treat it as a warning.
var ErrStyling = errors.New("could not apply styling")

// Style controls the cosmetic pass applied to written workbooks.
type Style struct {
	HeaderFill   string  // RGB hex without '#', e.g. "FFFF00"
	WidthPadding float64 // character units added to each auto-fit width
	MaxColWidth  float64 // 0 means uncapped
}

// DefaultStyle matches the tool's historical output: yellow header fill
// and two character units of width padding.
var DefaultStyle = Style{HeaderFill: "FFFF00", WidthPadding: 2}

// WriteTable creates a new single-sheet .xlsx file at path with the
// table's header row followed by its data rows. Column widths are
// auto-fit to the longest cell value and the header row gets a solid
// fill, all in the same in-memory pass before the one save. A styling
// failure is reported wrapped in ErrStyling after the file is saved;
// any other error means the file was not written.
func WriteTable(t *Table, path string, style Style) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	rows := make([][]string, 0, len(t.Rows)+1)
	rows = append(rows, t.Headers)
	rows = append(rows, t.Rows...)

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("invalid cell coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cellName, cell); err != nil {
				return fmt.Errorf("could not set cell %s: %w", cellName, err)
			}
		}
	}

	styleErr := applyStyle(f, sheet, rows, len(t.Headers), style)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}

	if styleErr != nil {
		return fmt.Errorf("%w for %s: %v", ErrStyling, path, styleErr)
	}
	return nil
}

func applyStyle(f *excelize.File, sheet string, rows [][]string, cols int, style Style) error {
	// Auto-fit each column to its longest non-empty value, header included.
	for colIdx := 0; colIdx < cols; colIdx++ {
		maxLen := 0
		for _, row := range rows {
			if colIdx < len(row) && len(row[colIdx]) > maxLen {
				maxLen = len(row[colIdx])
			}
		}
		width := float64(maxLen) + style.WidthPadding
		if style.MaxColWidth > 0 && width > style.MaxColWidth {
			width = style.MaxColWidth
		}
		colName, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, width); err != nil {
			return err
		}
	}

	if style.HeaderFill == "" || cols == 0 {
		return nil
	}

	fillID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{style.HeaderFill},
			Pattern: 1,
		},
	})
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", lastCol+"1", fillID)
}

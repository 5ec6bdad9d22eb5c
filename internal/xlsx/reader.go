// Package xlsx provides reading and writing capabilities for .xlsx (Excel) files.
package xlsx

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ErrNotFound is returned when the source path does not resolve to a file.
var ErrNotFound = errors.New("file not found")

// Table holds one worksheet's data: the header row and the data rows
// below it. Column order is fixed and shared across all rows.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Source describes a loaded workbook: its sheet names and the
// materialized table of the one sheet that was read.
type Source struct {
	Path       string   `json:"path"`
	SheetNames []string `json:"sheets"`
	Table      *Table   `json:"table"`
}

// SheetInfo summarizes a single worksheet.
type SheetInfo struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// ReadTable opens an .xlsx file and materializes the sheet at sheetIndex
// (usually 0, the first sheet) into a Table. Rows shorter than the header
// row are padded with empty cells so every row shares the header's width.
func ReadTable(path string, sheetIndex int) (*Source, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if sheetIndex < 0 || sheetIndex >= len(names) {
		return nil, fmt.Errorf("workbook %s has no sheet at index %d (%d sheets)", path, sheetIndex, len(names))
	}

	rows, err := f.GetRows(names[sheetIndex])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", names[sheetIndex], err)
	}

	table := &Table{}
	if len(rows) > 0 {
		table.Headers = rows[0]
		for _, row := range rows[1:] {
			for len(row) < len(table.Headers) {
				row = append(row, "")
			}
			table.Rows = append(table.Rows, row)
		}
	}

	return &Source{
		Path:       path,
		SheetNames: names,
		Table:      table,
	}, nil
}

// ReadInfo returns the name and row count of every sheet in the workbook.
func ReadInfo(path string) ([]SheetInfo, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	var infos []SheetInfo
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
		}
		infos = append(infos, SheetInfo{Name: name, Rows: len(rows)})
	}
	return infos, nil
}

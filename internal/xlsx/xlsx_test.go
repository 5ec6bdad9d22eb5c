package xlsx

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteAndReadTable(t *testing.T) {
	original := &Table{
		Headers: []string{"Name", "Age", "City"},
		Rows: [][]string{
			{"Alice", "30", "New York"},
			{"Bob", "25", "San Francisco"},
		},
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := WriteTable(original, path, DefaultStyle); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	src, err := ReadTable(path, 0)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	if len(src.SheetNames) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(src.SheetNames))
	}
	if !reflect.DeepEqual(src.Table.Headers, original.Headers) {
		t.Errorf("headers = %v, want %v", src.Table.Headers, original.Headers)
	}
	if !reflect.DeepEqual(src.Table.Rows, original.Rows) {
		t.Errorf("rows = %v, want %v", src.Table.Rows, original.Rows)
	}
}

func TestReadTablePadsRaggedRows(t *testing.T) {
	table := &Table{
		Headers: []string{"A", "B", "C"},
		Rows:    [][]string{{"only"}},
	}

	path := filepath.Join(t.TempDir(), "ragged.xlsx")
	if err := WriteTable(table, path, Style{}); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	src, err := ReadTable(path, 0)
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if got := src.Table.Rows[0]; len(got) != 3 || got[0] != "only" || got[1] != "" {
		t.Errorf("ragged row not padded: %v", got)
	}
}

func TestReadTableNotFound(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "missing.xlsx"), 0)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadTableSheetIndexOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.xlsx")
	if err := WriteTable(&Table{Headers: []string{"A"}}, path, Style{}); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadTable(path, 3); err == nil {
		t.Fatal("expected error for out-of-range sheet index")
	}
}

func TestWriteTableStyling(t *testing.T) {
	table := &Table{
		Headers: []string{"Name", "City"},
		Rows:    [][]string{{"Alice", "San Francisco"}},
	}

	path := filepath.Join(t.TempDir(), "styled.xlsx")
	if err := WriteTable(table, path, Style{HeaderFill: "FFFF00", WidthPadding: 2}); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("could not reopen output: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	// Column B auto-fits "San Francisco" (13 chars) plus padding of 2.
	width, err := f.GetColWidth(sheet, "B")
	if err != nil {
		t.Fatalf("GetColWidth failed: %v", err)
	}
	if width != 15 {
		t.Errorf("column B width = %v, want 15", width)
	}

	// Header cells carry a non-default style, data cells do not.
	headerStyle, err := f.GetCellStyle(sheet, "A1")
	if err != nil {
		t.Fatal(err)
	}
	if headerStyle == 0 {
		t.Error("expected header row to have a fill style")
	}
	dataStyle, err := f.GetCellStyle(sheet, "A2")
	if err != nil {
		t.Fatal(err)
	}
	if dataStyle == headerStyle {
		t.Error("data row should not share the header style")
	}
}

func TestWriteTableCapsColumnWidth(t *testing.T) {
	table := &Table{
		Headers: []string{"Notes"},
		Rows:    [][]string{{"a very long cell value that would otherwise dominate the column"}},
	}

	path := filepath.Join(t.TempDir(), "capped.xlsx")
	if err := WriteTable(table, path, Style{WidthPadding: 2, MaxColWidth: 40}); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	width, err := f.GetColWidth(f.GetSheetName(0), "A")
	if err != nil {
		t.Fatal(err)
	}
	if width != 40 {
		t.Errorf("capped width = %v, want 40", width)
	}
}

func TestReadInfo(t *testing.T) {
	table := &Table{
		Headers: []string{"A"},
		Rows:    [][]string{{"1"}, {"2"}},
	}

	path := filepath.Join(t.TempDir(), "info.xlsx")
	if err := WriteTable(table, path, Style{}); err != nil {
		t.Fatal(err)
	}

	infos, err := ReadInfo(path)
	if err != nil {
		t.Fatalf("ReadInfo failed: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(infos))
	}
	if infos[0].Rows != 3 {
		t.Errorf("expected 3 rows (header + 2), got %d", infos[0].Rows)
	}
}

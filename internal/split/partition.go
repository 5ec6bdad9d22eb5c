// Package split partitions a spreadsheet table into one group of rows per
// distinct value of a chosen column, and runs the full split pipeline:
// load, validate, sort, group, write, format.
package split

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/jewettg/excel-tool/internal/xlsx"
)

// ErrMissingColumn is returned when the requested split column is not
// among the table's headers. Column matching is case-sensitive.
var ErrMissingColumn = errors.New("column not found")

// Partition is one group of rows sharing a distinct split-column value.
type Partition struct {
	Value string
	Rows  [][]string
}

// Partitions sorts the table's rows ascending by the named column and
// groups them by its distinct values, in ascending distinct order. Every
// row lands in exactly one partition; ties keep their original relative
// order. An empty table yields zero partitions and no error.
func Partitions(t *xlsx.Table, column string) ([]Partition, error) {
	idx := -1
	for i, h := range t.Headers {
		if h == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, column)
	}

	rows := make([][]string, len(t.Rows))
	copy(rows, t.Rows)

	numeric := allNumeric(rows, idx)
	sort.SliceStable(rows, func(i, j int) bool {
		return lessValue(cellAt(rows[i], idx), cellAt(rows[j], idx), numeric)
	})

	var parts []Partition
	for _, row := range rows {
		v := cellAt(row, idx)
		if len(parts) == 0 || parts[len(parts)-1].Value != v {
			parts = append(parts, Partition{Value: v})
		}
		p := &parts[len(parts)-1]
		p.Rows = append(p.Rows, row)
	}
	return parts, nil
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// allNumeric reports whether every key in the column parses as a number,
// in which case the sort compares numerically instead of bytewise.
func allNumeric(rows [][]string, idx int) bool {
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		if _, err := strconv.ParseFloat(cellAt(row, idx), 64); err != nil {
			return false
		}
	}
	return true
}

func lessValue(a, b string, numeric bool) bool {
	if numeric {
		fa, _ := strconv.ParseFloat(a, 64)
		fb, _ := strconv.ParseFloat(b, 64)
		return fa < fb
	}
	return a < b
}

package split

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jewettg/excel-tool/internal/runlog"
	"github.com/jewettg/excel-tool/internal/xlsx"
)

// Options configures one split run.
type Options struct {
	SourcePath string
	Column     string
	SheetIndex int
	Style      xlsx.Style
}

// FileResult records the outcome of writing one partition's output file.
type FileResult struct {
	Value string `json:"value"`
	Path  string `json:"path"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

// Result aggregates the outcome of a split run. It replaces a mutable
// run-status flag: any recorded error means the run failed, and a failure
// is never cleared by later successes.
type Result struct {
	Source     string       `json:"source"`
	Column     string       `json:"column"`
	Sheets     []string     `json:"sheets,omitempty"`
	Partitions int          `json:"partitions"`
	Files      []FileResult `json:"files,omitempty"`
	Errors     []string     `json:"errors,omitempty"`
}

// Failed reports whether any step of the run recorded an error.
func (r *Result) Failed() bool { return len(r.Errors) > 0 }

func (r *Result) fail(log *runlog.Logger, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Errorf("%s", msg)
	r.Errors = append(r.Errors, msg)
}

// Run executes the whole split pipeline: load the first sheet, partition
// on the split column, and write one styled workbook per distinct value
// into the {stem}_split directory. A write failure for one partition is
// recorded and the loop continues with the rest (best-effort across
// partitions); read and validation failures abort before any file is
// written.
func Run(opts Options, log *runlog.Logger) *Result {
	res := &Result{Source: opts.SourcePath, Column: opts.Column}

	log.Infof("Splitting Excel file: %s", opts.SourcePath)

	src, err := xlsx.ReadTable(opts.SourcePath, opts.SheetIndex)
	if err != nil {
		if errors.Is(err, xlsx.ErrNotFound) {
			res.fail(log, "Excel file does not exist: %s", opts.SourcePath)
		} else {
			res.fail(log, "Error reading Excel file %s: %v", opts.SourcePath, err)
		}
		return res
	}

	res.Sheets = src.SheetNames
	log.Infof("Excel file contains the following sheets:")
	for _, name := range src.SheetNames {
		log.Infof(" -> %s", name)
	}

	parts, err := Partitions(src.Table, opts.Column)
	if err != nil {
		res.fail(log, "Excel sheet does not contain %q column, cannot split", opts.Column)
		return res
	}

	res.Partitions = len(parts)
	log.Infof("Found %d unique %s values to split on", len(parts), opts.Column)

	if len(parts) == 0 {
		return res
	}

	outDir := OutputDir(opts.SourcePath)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		res.fail(log, "Error creating output directory %s: %v", outDir, err)
		return res
	}

	// Two distinct values may sanitize to the same filename; the later
	// write overwrites the earlier. Detect it so the loss is never silent.
	firstValue := make(map[string]string, len(parts))
	for _, p := range parts {
		name := FileName(opts.SourcePath, p.Value)
		if prev, ok := firstValue[name]; ok {
			res.fail(log, "Filename collision: values %q and %q both map to %s — the later file overwrites the earlier", prev, p.Value, name)
		} else {
			firstValue[name] = p.Value
		}
	}

	for _, p := range parts {
		outPath := filepath.Join(outDir, FileName(opts.SourcePath, p.Value))
		fr := FileResult{Value: p.Value, Path: outPath, Rows: len(p.Rows)}

		table := &xlsx.Table{Headers: src.Table.Headers, Rows: p.Rows}
		err := xlsx.WriteTable(table, outPath, opts.Style)
		switch {
		case err == nil:
			log.Infof("Wrote %d records to file: %s", len(p.Rows), outPath)
		case errors.Is(err, xlsx.ErrStyling):
			// Data landed; only the cosmetic pass failed.
			log.Warnf("%v", err)
			log.Infof("Wrote %d records to file: %s", len(p.Rows), outPath)
		default:
			fr.Error = err.Error()
			res.fail(log, "Error writing Excel file for %s %q: %v", opts.Column, p.Value, err)
		}

		res.Files = append(res.Files, fr)
	}

	return res
}

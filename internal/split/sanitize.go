package split

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	unsafeChars    = regexp.MustCompile(`[^A-Za-z0-9_]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

// Sanitize converts an arbitrary cell value into a filename-safe token:
// every character outside [A-Za-z0-9_] becomes an underscore, runs of
// underscores collapse to one, and leading/trailing underscores are
// trimmed. Sanitize is idempotent.
func Sanitize(value string) string {
	s := unsafeChars.ReplaceAllString(value, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// OutputDir returns the directory that receives the split output files:
// a sibling of the source named after its stem, e.g. report.xlsx →
// report_split.
func OutputDir(source string) string {
	return stem(source) + "_split"
}

// FileName returns the output filename for one partition value:
// {source stem}_{sanitized value}.xlsx.
func FileName(source, value string) string {
	return filepath.Base(stem(source)) + "_" + Sanitize(value) + ".xlsx"
}

func stem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

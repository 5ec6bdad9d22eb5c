package runlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
)

func fixedClock() func() time.Time {
	ts := time.Date(2025, 9, 10, 14, 30, 5, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestLoggerWritesDatedFile(t *testing.T) {
	color.NoColor = true
	dir := filepath.Join(t.TempDir(), "logs")
	buf := &bytes.Buffer{}

	log := New(dir, "excel_tool", "EXCELTOOL", LevelInfo,
		WithConsole(buf), WithClock(fixedClock()))
	defer log.Close()

	log.Infof("Splitting Excel file: %s", "roster.xlsx")

	path := filepath.Join(dir, "excel_tool_2025-09-10.log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected dated log file at %s: %v", path, err)
	}

	line := string(data)
	want := "2025-09-10 14:30:05 INFO     (EXCELTOOL) Splitting Excel file: roster.xlsx\n"
	if line != want {
		t.Errorf("file line = %q, want %q", line, want)
	}
	if buf.String() != want {
		t.Errorf("console line = %q, want %q", buf.String(), want)
	}
}

func TestLoggerMinimumLevel(t *testing.T) {
	color.NoColor = true
	buf := &bytes.Buffer{}
	log := New(filepath.Join(t.TempDir(), "logs"), "excel_tool", "T", LevelWarn,
		WithConsole(buf), WithClock(fixedClock()))
	defer log.Close()

	log.Debugf("debug")
	log.Infof("info")
	log.Warnf("warn")
	log.Errorf("error")

	out := buf.String()
	if strings.Contains(out, "DEBUG") || strings.Contains(out, "INFO") {
		t.Errorf("below-minimum lines leaked: %q", out)
	}
	if !strings.Contains(out, "WARNING") || !strings.Contains(out, "ERROR") {
		t.Errorf("expected warn and error lines: %q", out)
	}
}

func TestLoggerConsoleOnlyWhenDirUnwritable(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	blocker := filepath.Join(dir, "logs")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	log := New(blocker, "excel_tool", "T", LevelInfo, WithConsole(buf))
	defer log.Close()

	log.Infof("still works")
	if !strings.Contains(buf.String(), "still works") {
		t.Errorf("console output missing: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "console only") {
		t.Errorf("expected degradation warning: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"info":    LevelInfo,
		"WARN":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Package runlog provides the run-scoped log sink: timestamped, leveled
// lines appended to a dated file under the logs directory and mirrored to
// the console. Loggers are created per run and injected, never global.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var levelColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgHiBlack),
	LevelInfo:  color.New(color.FgCyan),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
}

// Logger writes leveled log lines to a file and a console writer.
type Logger struct {
	mu      sync.Mutex
	min     Level
	tag     string
	file    io.WriteCloser
	console io.Writer
	now     func() time.Time
}

// Option customizes a Logger.
type Option func(*Logger)

// WithConsole redirects console output, used by tests.
func WithConsole(w io.Writer) Option {
	return func(l *Logger) { l.console = w }
}

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// New creates a Logger appending to {dir}/{name}_{YYYY-MM-DD}.log and
// mirroring to stdout. The directory is created if absent. If the log
// file cannot be opened the logger degrades to console-only and says so.
func New(dir, name, tag string, min Level, opts ...Option) *Logger {
	l := &Logger{
		min:     min,
		tag:     tag,
		console: os.Stdout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.log", name, l.now().Format("2006-01-02")))
	if err := os.MkdirAll(dir, 0755); err != nil {
		l.Warnf("could not create log directory %s: %v — logging to console only", dir, err)
		return l
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		l.Warnf("could not open log file %s: %v — logging to console only", path, err)
		return l
	}
	l.file = f
	return l
}

// FilePath returns the dated log file path the logger would use under dir.
func FilePath(dir, name string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.log", name, time.Now().Format("2006-01-02")))
}

// Close closes the underlying log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(LevelError, format, args...) }

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if level < l.min {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("%s %-8s (%s) %s\n", ts, level, l.tag, msg)

	if l.file != nil {
		_, _ = io.WriteString(l.file, line)
	}
	if l.console != nil {
		if c, ok := levelColors[level]; ok {
			fmt.Fprintf(l.console, "%s %s (%s) %s\n", ts, c.Sprintf("%-8s", level), l.tag, msg)
		} else {
			_, _ = io.WriteString(l.console, line)
		}
	}
}

// Package watch provides a file system watcher that triggers a split run
// for every new or modified .xlsx workbook in the watched directories.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jewettg/excel-tool/internal/runlog"
)

// Config holds the watcher configuration.
type Config struct {
	Directories []string
	Recursive   bool
	Debounce    time.Duration // wait after the last event before processing
}

// Handler is called with the path of a workbook that settled down.
type Handler func(path string) error

// Watcher monitors directories for workbook changes.
type Watcher struct {
	Config  Config
	Handler Handler

	log      *runlog.Logger
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	debounce map[string]*time.Timer
}

// New creates a Watcher. Events are logged through the given logger.
func New(config Config, log *runlog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	if config.Debounce <= 0 {
		config.Debounce = 500 * time.Millisecond
	}

	return &Watcher{
		Config:   config,
		log:      log,
		watcher:  fsw,
		debounce: make(map[string]*time.Timer),
	}, nil
}

// Start begins watching the configured directories. It blocks until the
// context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	for _, dir := range w.Config.Directories {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("could not resolve %s: %w", dir, err)
		}

		if w.Config.Recursive {
			if err := w.addRecursive(absDir); err != nil {
				return err
			}
		} else {
			if err := w.watcher.Add(absDir); err != nil {
				return fmt.Errorf("could not watch %s: %w", absDir, err)
			}
		}
	}

	w.log.Infof("Watching %d directory(ies) for workbook changes", len(w.Config.Directories))

	for {
		select {
		case <-ctx.Done():
			w.log.Infof("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Errorf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if info.IsDir() {
			base := filepath.Base(path)
			if path != dir && (strings.HasPrefix(base, ".") || strings.HasSuffix(base, "_split")) {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !Eligible(event.Name) {
		return
	}

	// Debounce per path so a workbook still being copied in settles
	// before we split it.
	w.mu.Lock()
	if timer, ok := w.debounce[event.Name]; ok {
		timer.Stop()
	}
	path := event.Name
	w.debounce[path] = time.AfterFunc(w.Config.Debounce, func() {
		w.processFile(path)
	})
	w.mu.Unlock()
}

func (w *Watcher) processFile(path string) {
	if w.Handler == nil {
		return
	}
	if err := w.Handler(path); err != nil {
		w.log.Errorf("Error processing %s: %v", path, err)
		return
	}
	w.log.Infof("Processed %s", path)
}

// Eligible reports whether a path is a workbook the watcher should split:
// an .xlsx file that is not an Office temp file and does not live inside
// a _split output directory (our own output must never be re-processed).
func Eligible(path string) bool {
	if strings.ToLower(filepath.Ext(path)) != ".xlsx" {
		return false
	}

	base := filepath.Base(path)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}

	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if strings.HasSuffix(part, "_split") {
			return false
		}
	}
	return true
}

// Package watch re-checks SQL files as they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/leapstack-labs/sqlround/pkg/parser"
)

// DefaultDebounce is used when Config.Debounce is not set.
const DefaultDebounce = 200 * time.Millisecond

// Event reports the outcome of checking one file.
type Event struct {
	File    string
	Output  string
	Changed bool
	Written bool
	Err     error
}

// Config configures a Watcher.
type Config struct {
	Pipeline *engine.Pipeline
	Debounce time.Duration
	// Write rewrites files that are not formatted.
	Write bool
	// Initial checks every file once before waiting for changes.
	Initial bool
	Logger  *slog.Logger
	// OnEvent is called after each check, from the watcher's goroutines.
	OnEvent func(Event)
}

// Watcher formats .sql files below a directory whenever they change.
type Watcher struct {
	cfg    Config
	logger *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	// written remembers content the watcher itself wrote, so the write
	// event it causes is not reported again.
	written map[string]string

	writeFile func(name string, data []byte, perm fs.FileMode) error
}

// New creates a Watcher.
func New(cfg Config) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		cfg:     cfg,
		logger:  logger,
		timers:  make(map[string]*time.Timer),
		written: make(map[string]string),

		writeFile: os.WriteFile,
	}
}

// Run watches dir recursively until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	if w.cfg.Pipeline == nil {
		return errors.New("watch: no pipeline configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.logger.Info("watching for changes", "dir", dir, "debounce", w.cfg.Debounce)

	if w.cfg.Initial {
		if err := w.checkAll(dir); err != nil {
			return err
		}
	}

	defer w.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchDirRecursive(watcher, event.Name); err != nil {
						w.logger.Error("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}

			if !isSQLFile(event.Name) {
				continue
			}
			w.schedule(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// schedule debounces checks per file.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.cfg.Debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.check(path)
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) checkAll(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isSQLFile(path) {
			w.check(path)
		}
		return nil
	})
}

// check formats one file and reports the result.
func (w *Watcher) check(path string) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the watched tree
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.logger.Error("failed to read file", "file", path, "error", err)
		}
		return
	}
	src := string(data)

	w.mu.Lock()
	own, ok := w.written[path]
	if ok {
		delete(w.written, path)
	}
	w.mu.Unlock()
	if ok && own == src {
		w.logger.Debug("skipping own write", "file", path)
		return
	}

	ev := Event{File: path}
	out, err := w.cfg.Pipeline.Format(src)
	switch {
	case err != nil:
		ev.Err = err
		attrs := []any{"file", path, "error", parser.ErrorMessage(err)}
		if pos, ok := parser.ErrorPosition(err); ok {
			attrs = append(attrs, "line", pos.Line, "column", pos.Column)
		}
		w.logger.Warn("parse error", attrs...)

	case out != strings.TrimRight(src, "\n"):
		ev.Output = out
		ev.Changed = true
		if w.cfg.Write {
			content := out + "\n"
			w.mu.Lock()
			w.written[path] = content
			w.mu.Unlock()
			if err := w.writeFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // keep files readable
				w.mu.Lock()
				delete(w.written, path)
				w.mu.Unlock()
				ev.Err = err
				w.logger.Error("failed to write file", "file", path, "error", err)
				break
			}
			ev.Written = true
			w.logger.Info("reformatted file", "file", path)
		} else {
			w.logger.Warn("file is not formatted", "file", path)
		}

	default:
		ev.Output = out
		w.logger.Debug("file is formatted", "file", path)
	}

	if w.cfg.OnEvent != nil {
		w.cfg.OnEvent(ev)
	}
}

func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".sql")
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

package schema

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/sqlpad/pkg/complete"
)

const debounce = 100 * time.Millisecond

// Watcher reloads a YAML snapshot whenever the file changes.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewWatcher starts watching the directory holding path. Watching the
// directory also catches editors that save by renaming a temp file.
func NewWatcher(path string, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve schema file: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	return &Watcher{path: abs, watcher: fw, logger: logger}, nil
}

// Run delivers freshly loaded tables to onChange until ctx is done. Bursts
// of events within 100ms collapse into one reload. A file that fails to
// parse is logged and skipped; onChange is not called for it.
func (w *Watcher) Run(ctx context.Context, onChange func([]complete.Table)) error {
	defer func() { _ = w.watcher.Close() }()

	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	defer func() {
		mu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Unlock()
	}()

	reload := func() {
		tables, err := FileSource{Path: w.path}.Load(ctx)
		if err != nil {
			w.logger.Warn("schema reload failed", slog.String("path", w.path), slog.Any("error", err))
			return
		}
		w.logger.Debug("schema reloaded", slog.String("path", w.path), slog.Int("tables", len(tables)))
		onChange(tables)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, reload)
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// Watch is NewWatcher followed by Run.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func([]complete.Table)) error {
	w, err := NewWatcher(path, logger)
	if err != nil {
		return err
	}
	return w.Run(ctx, onChange)
}

package adapter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher reports batches of changed source files under a set of roots.
type Watcher interface {
	// Watch blocks until ctx is cancelled, calling onChange with the
	// de-duplicated, sorted paths that changed within one debounce window.
	Watch(ctx context.Context, roots []m.Path, onChange func([]m.Path)) error
}

// FSNotifyWatcher is a Watcher backed by fsnotify. Directories are watched
// recursively; skipped directories (node_modules, .git, ...) are ignored.
type FSNotifyWatcher struct {
	debounce time.Duration

	mu      sync.Mutex
	pending map[m.Path]struct{}
}

// NewFSNotifyWatcher creates a watcher that batches events for debounce.
// A zero debounce uses the default.
func NewFSNotifyWatcher(debounce time.Duration) *FSNotifyWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	return &FSNotifyWatcher{
		debounce: debounce,
		pending:  make(map[m.Path]struct{}),
	}
}

// Watch implements Watcher.
func (w *FSNotifyWatcher) Watch(ctx context.Context, roots []m.Path, onChange func([]m.Path)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	defer func() {
		_ = fsw.Close()
	}()

	for _, root := range roots {
		if err := addWatchesRecursive(fsw, string(root)); err != nil {
			return err
		}
	}

	slog.Info("Watching for changes", "roots", roots, "debounce", w.debounce)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			w.handleEvent(fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			slog.Error("Watcher error", "error", err)

		case <-ticker.C:
			if batch := w.drain(); len(batch) > 0 {
				onChange(batch)
			}
		}
	}
}

func (w *FSNotifyWatcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addWatchesRecursive(fsw, event.Name); err != nil {
				slog.Warn("Failed to watch new directory", "path", event.Name, "error", err)
			}

			return
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return
	}

	if _, ok := m.LanguageFor(m.Path(event.Name)); !ok {
		return
	}

	w.mu.Lock()
	w.pending[m.Path(event.Name)] = struct{}{}
	w.mu.Unlock()
}

func (w *FSNotifyWatcher) drain() []m.Path {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}

	batch := make([]m.Path, 0, len(w.pending))
	for path := range w.pending {
		batch = append(batch, path)
	}

	w.pending = make(map[m.Path]struct{})

	sort.Slice(batch, func(i, j int) bool { return batch[i] < batch[j] })

	return batch
}

func addWatchesRecursive(fsw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fsw.Add(filepath.Dir(root))
	}

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if _, skip := skippedDirs[base]; skip || (path != root && strings.HasPrefix(base, ".")) {
			return filepath.SkipDir
		}

		if err := fsw.Add(path); err != nil {
			slog.Warn("Failed to watch directory", "path", path, "error", err)
		}

		return nil
	})
}

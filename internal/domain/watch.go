package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"tsguard.dev/pkg/tsguard/internal/controller"
	m "tsguard.dev/pkg/tsguard/internal/model"
)

// Watch lints every matched file once, then re-lints changed files until ctx
// is cancelled. Files whose content hash is unchanged since the last run are
// skipped, so writes made by --fix do not trigger another pass.
func (w *workflow) Watch(ctx context.Context, args LintArgs) error {
	if w.watcher == nil {
		return errors.New("watch mode requires a watcher")
	}

	filter, err := newFileFilter(args.Exclude, args.Ignore)
	if err != nil {
		return err
	}

	files, err := w.collectFiles(ctx, args.Paths, filter)
	if err != nil {
		return fmt.Errorf("collect files: %w", err)
	}

	if err := w.Start(ctx, controller.WithWatchMode()); err != nil {
		return err
	}
	defer w.Close(ctx)

	hashes := make(map[m.Path]string, len(files))

	if _, _, err := w.run(ctx, files, args); err != nil {
		return err
	}

	w.rememberHashes(ctx, files, hashes)

	roots, err := w.watchRoots(ctx, args.Paths)
	if err != nil {
		return err
	}

	err = w.watcher.Watch(ctx, roots, func(changed []m.Path) {
		targets := w.changedFiles(ctx, changed, filter, hashes)
		if len(targets) == 0 {
			return
		}

		slog.Debug("Re-linting changed files", "count", len(targets))

		if _, _, err := w.run(ctx, targets, args); err != nil {
			slog.Error("Re-lint failed", "error", err)
			return
		}

		w.rememberHashes(ctx, targets, hashes)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// changedFiles keeps the accepted, existing paths whose content differs from
// the last linted version.
func (w *workflow) changedFiles(ctx context.Context, changed []m.Path, filter *fileFilter, hashes map[m.Path]string) []m.Path {
	targets := make([]m.Path, 0, len(changed))

	for _, path := range changed {
		path = w.normalizePath(ctx, path)
		if !filter.accepts(path) {
			continue
		}

		hash, err := w.HashFile(ctx, path)
		if err != nil {
			// Removed or unreadable.
			delete(hashes, path)
			continue
		}

		if previous, ok := hashes[path]; ok && previous == hash {
			continue
		}

		targets = append(targets, path)
	}

	return targets
}

func (w *workflow) rememberHashes(ctx context.Context, files []m.Path, hashes map[m.Path]string) {
	for _, file := range files {
		hash, err := w.HashFile(ctx, file)
		if err != nil {
			delete(hashes, file)
			continue
		}

		hashes[file] = hash
	}
}

// watchRoots returns the directories to watch for the given path patterns.
// A file pattern watches its parent directory.
func (w *workflow) watchRoots(ctx context.Context, patterns []m.Path) ([]m.Path, error) {
	if len(patterns) == 0 {
		patterns = []m.Path{"./" + recursiveSuffix}
	}

	seen := make(map[m.Path]struct{})
	roots := make([]m.Path, 0, len(patterns))

	for _, pattern := range patterns {
		root, _ := parsePathPattern(pattern)

		info, err := w.FileInfo(ctx, root)
		if err != nil {
			return nil, fmt.Errorf("path %s: %w", pattern, err)
		}

		if !info.IsDir() {
			root = m.Path(filepath.Dir(string(root)))
		}

		root = m.Path(filepath.Clean(string(root)))
		if _, dup := seen[root]; dup {
			continue
		}

		seen[root] = struct{}{}
		roots = append(roots, root)
	}

	return roots, nil
}

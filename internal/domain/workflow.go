package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"tsguard.dev/pkg/tsguard/internal/adapter"
	"tsguard.dev/pkg/tsguard/internal/controller"
	"tsguard.dev/pkg/tsguard/internal/domain/rules"
	m "tsguard.dev/pkg/tsguard/internal/model"
)

// ErrViolationsFound is returned when a run leaves diagnostics behind.
var ErrViolationsFound = errors.New("lint violations found")

// ReportVersion is the schema version written to saved reports.
const ReportVersion = 1

const recursiveSuffix = "..."

// LintArgs contains the arguments for a lint run.
type LintArgs struct {
	Paths   []m.Path
	Exclude []string // regular expressions matched against file paths
	Ignore  []string // doublestar globs matched against file paths
	Rules   []rules.Rule
	Fix     bool
	Diff    bool
	Threads int
	Report  m.Path
}

// Workflow drives lint runs over a set of paths.
type Workflow interface {
	Lint(ctx context.Context, args LintArgs) (m.Summary, error)
	Watch(ctx context.Context, args LintArgs) error
	View(ctx context.Context, report m.Path) (m.Summary, error)
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI

	linter  Linter
	watcher adapter.Watcher
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	watcher adapter.Watcher,
	ui controller.UI,
	linter Linter,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		linter:          linter,
		watcher:         watcher,
	}
}

// fileOutcome is the result of linting one file plus its optional diff.
type fileOutcome struct {
	result m.FileResult
	diff   string
}

func (w *workflow) Lint(ctx context.Context, args LintArgs) (m.Summary, error) {
	filter, err := newFileFilter(args.Exclude, args.Ignore)
	if err != nil {
		return m.Summary{}, err
	}

	files, err := w.collectFiles(ctx, args.Paths, filter)
	if err != nil {
		return m.Summary{}, fmt.Errorf("collect files: %w", err)
	}

	slog.Info("Linting files", "count", len(files), "rules", len(args.Rules), "fix", args.Fix)

	mode := controller.WithLintMode()
	if args.Fix {
		mode = controller.WithFixMode()
	}

	if err := w.Start(ctx, mode); err != nil {
		slog.Error("Failed to start UI", "error", err)
		return m.Summary{}, err
	}

	summary, results, err := w.run(ctx, files, args)
	if err != nil {
		w.Close(ctx)
		return summary, err
	}

	if args.Report != "" {
		report := m.Report{
			Version:   ReportVersion,
			CreatedAt: time.Now().UTC(),
			Summary:   summary,
			Files:     results,
		}

		if err := w.SaveReport(args.Report, report); err != nil {
			w.Close(ctx)
			return summary, fmt.Errorf("save report: %w", err)
		}
	}

	w.Wait(ctx)
	w.Close(ctx)

	return summary, verdict(summary)
}

// run lints files, streams the results to the UI in path order and displays
// the summary.
func (w *workflow) run(ctx context.Context, files []m.Path, args LintArgs) (m.Summary, []m.FileResult, error) {
	outcomes, err := w.lintFiles(ctx, files, args)
	if err != nil {
		return m.Summary{}, nil, err
	}

	var summary m.Summary

	results := make([]m.FileResult, 0, len(outcomes))

	for _, outcome := range outcomes {
		w.DisplayFileResult(ctx, outcome.result)

		if outcome.diff != "" {
			w.DisplayDiff(ctx, outcome.result.Path, outcome.diff)
		}

		summary.Add(outcome.result)
		results = append(results, outcome.result)
	}

	if err := w.DisplaySummary(ctx, summary); err != nil {
		return summary, results, fmt.Errorf("display summary: %w", err)
	}

	return summary, results, nil
}

func (w *workflow) lintFiles(ctx context.Context, files []m.Path, args LintArgs) ([]fileOutcome, error) {
	outcomes := make([]fileOutcome, len(files))

	threads := args.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, file := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			outcomes[i] = w.lintFile(groupCtx, file, args)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

// lintFile never fails the run: read, parse and write errors are recorded on
// the file result.
func (w *workflow) lintFile(ctx context.Context, path m.Path, args LintArgs) fileOutcome {
	content, err := w.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read file", "path", path, "error", err)
		return fileOutcome{result: m.FileResult{Path: path, Err: fmt.Errorf("read: %w", err)}}
	}

	if !args.Fix && !args.Diff {
		result, err := w.linter.Lint(ctx, path, content, args.Rules)
		if err != nil {
			slog.Error("Failed to lint file", "path", path, "error", err)
			result.Err = err
		}

		return fileOutcome{result: result}
	}

	fixed, result, err := w.linter.Fix(ctx, path, content, args.Rules)
	if err != nil {
		slog.Error("Failed to fix file", "path", path, "error", err)
		return fileOutcome{result: m.FileResult{Path: path, Err: err}}
	}

	outcome := fileOutcome{result: result}
	changed := !bytes.Equal(fixed, content)

	if args.Diff && changed {
		outcome.diff = unifiedDiff(path, content, fixed)
	}

	if !args.Fix {
		// Diff only: report what is in the file now, nothing was written.
		original, err := w.linter.Lint(ctx, path, content, args.Rules)
		if err != nil {
			original.Err = err
		}

		outcome.result = original

		return outcome
	}

	if changed {
		if err := w.writeFixed(ctx, path, fixed); err != nil {
			slog.Error("Failed to write fixed file", "path", path, "error", err)
			outcome.result.Err = err
		}
	}

	return outcome
}

func (w *workflow) writeFixed(ctx context.Context, path m.Path, content []byte) error {
	perm := os.FileMode(0o644)
	if info, err := w.FileInfo(ctx, path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := w.WriteFile(ctx, path, content, perm); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}

func unifiedDiff(path m.Path, before, after []byte) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: string(path),
		ToFile:   string(path),
		Context:  3,
	})
	if err != nil {
		slog.Warn("Failed to render diff", "path", path, "error", err)
		return ""
	}

	return diff
}

// collectFiles expands path patterns into the sorted, de-duplicated list of
// source files to lint.
func (w *workflow) collectFiles(ctx context.Context, patterns []m.Path, filter *fileFilter) ([]m.Path, error) {
	if len(patterns) == 0 {
		patterns = []m.Path{"./" + recursiveSuffix}
	}

	seen := make(map[m.Path]struct{})
	files := make([]m.Path, 0)

	for _, pattern := range patterns {
		root, recursive := parsePathPattern(pattern)

		if _, err := w.FileInfo(ctx, root); err != nil {
			return nil, fmt.Errorf("path %s: %w", pattern, err)
		}

		err := w.Walk(ctx, root, recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			file := w.normalizePath(ctx, m.Path(path))
			if _, dup := seen[file]; dup || !filter.accepts(file) {
				return nil
			}

			seen[file] = struct{}{}
			files = append(files, file)

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i] < files[j] })

	return files, nil
}

// normalizePath returns path relative to the working directory when it lies
// beneath it, and the absolute path otherwise.
func (w *workflow) normalizePath(ctx context.Context, path m.Path) m.Path {
	abs, err := w.Abs(ctx, path)
	if err != nil {
		return m.Path(filepath.Clean(string(path)))
	}

	cwd, err := w.Abs(ctx, ".")
	if err != nil {
		return abs
	}

	rel, err := w.RelPath(ctx, cwd, abs)
	if err != nil || rel == ".." || strings.HasPrefix(string(rel), ".."+string(filepath.Separator)) {
		return abs
	}

	return rel
}

// parsePathPattern splits "./dir/..." into its root and the recursive flag.
func parsePathPattern(pattern m.Path) (m.Path, bool) {
	p := string(pattern)
	if !strings.HasSuffix(p, recursiveSuffix) {
		return pattern, false
	}

	root := strings.TrimSuffix(strings.TrimSuffix(p, recursiveSuffix), "/")
	if root == "" {
		root = "."
	}

	return m.Path(root), true
}

// fileFilter decides which walked files are linted.
type fileFilter struct {
	excludes []*regexp.Regexp
	ignores  []string
}

func newFileFilter(excludes, ignores []string) (*fileFilter, error) {
	f := &fileFilter{}

	for _, pattern := range excludes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		f.excludes = append(f.excludes, re)
	}

	for _, pattern := range ignores {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}

		f.ignores = append(f.ignores, pattern)
	}

	return f, nil
}

func (f *fileFilter) accepts(path m.Path) bool {
	if _, ok := m.LanguageFor(path); !ok {
		return false
	}

	slashPath := strings.TrimPrefix(filepath.ToSlash(string(path)), "./")

	for _, re := range f.excludes {
		if re.MatchString(slashPath) {
			slog.Debug("Excluded by pattern", "path", path, "pattern", re.String())
			return false
		}
	}

	globPath := strings.TrimPrefix(slashPath, "/")

	for _, pattern := range f.ignores {
		if matched, _ := doublestar.Match(pattern, globPath); matched {
			slog.Debug("Ignored by glob", "path", path, "glob", pattern)
			return false
		}
	}

	return true
}

func verdict(summary m.Summary) error {
	if summary.Diagnostics > 0 {
		return fmt.Errorf("%w: %d problem(s)", ErrViolationsFound, summary.Diagnostics)
	}

	if summary.Errors > 0 {
		return fmt.Errorf("%d file(s) could not be linted", summary.Errors)
	}

	return nil
}

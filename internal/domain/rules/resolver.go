package rules

import (
	"context"
	"path/filepath"
	"strings"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// ResolveRelative joins a relative import specifier onto currentDir. It
// returns false for package specifiers and for bare directory specifiers
// (".", "..", "./dir/"), which never name a single source file.
func ResolveRelative(importPath string, currentDir m.Path) (m.Path, bool) {
	if !strings.HasPrefix(importPath, ".") {
		return "", false
	}

	if strings.HasSuffix(importPath, "/") {
		return "", false
	}

	switch filepath.Base(filepath.FromSlash(importPath)) {
	case ".", "..":
		return "", false
	}

	resolved := filepath.Join(string(currentDir), filepath.FromSlash(importPath))

	abs, err := filepath.Abs(resolved)
	if err != nil {
		return m.Path(resolved), true
	}

	return m.Path(abs), true
}

// ExistsWithExtension reports whether basePath+extension is an existing
// regular file. Any filesystem error counts as "does not exist".
func ExistsWithExtension(ctx context.Context, fs FileStat, basePath m.Path, extension string) bool {
	if fs == nil {
		return false
	}

	info, err := fs.FileInfo(ctx, basePath+m.Path(extension))
	if err != nil || info == nil {
		return false
	}

	return !info.IsDir()
}

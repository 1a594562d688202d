// Package model defines the data structures shared by the linter layers.
package model

import (
	"path/filepath"
	"regexp"
)

// Path represents a file system path.
type Path string

// testFilePattern matches the final two dot-segments of a test file name,
// e.g. "foo.test.ts" or "bar.spec.jsx".
var testFilePattern = regexp.MustCompile(`\.(test|spec)\.(js|ts|jsx|tsx)$`)

// SourceFile describes the file currently being linted. It is built fresh for
// every traversal and never cached across files.
type SourceFile struct {
	Path   Path
	Dir    Path
	IsTest bool
}

// NewSourceFile derives the directory and test-file flag from path.
func NewSourceFile(path Path) SourceFile {
	return SourceFile{
		Path:   path,
		Dir:    Path(filepath.Dir(string(path))),
		IsTest: IsTestPath(path),
	}
}

// IsTestPath reports whether path names a JS/TS test or spec file.
func IsTestPath(path Path) bool {
	return testFilePattern.MatchString(string(path))
}

// Language identifies the grammar used to parse a source file.
type Language string

const (
	// LanguageTypeScript covers .ts, .mts and .cts files.
	LanguageTypeScript Language = "typescript"
	// LanguageTSX covers .tsx files.
	LanguageTSX Language = "tsx"
	// LanguageJavaScript covers .js, .jsx, .mjs and .cjs files.
	LanguageJavaScript Language = "javascript"
)

var languageByExt = map[string]Language{
	".ts":  LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
	".tsx": LanguageTSX,
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
}

// LanguageFor returns the grammar for path, or false when the extension is
// not a supported source extension.
func LanguageFor(path Path) (Language, bool) {
	lang, ok := languageByExt[filepath.Ext(string(path))]
	return lang, ok
}

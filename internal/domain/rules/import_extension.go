package rules

import (
	"strings"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// ImportExtensionID is the public identifier of the import-extension rule.
const ImportExtensionID = "import-extension"

// DefaultExtension is the extension enforced when none is configured.
const DefaultExtension = ".ts"

// ImportExtension requires relative imports and re-exports of source files to
// spell out the file extension.
type ImportExtension struct {
	extension string
}

// NewImportExtension creates the rule for extension (e.g. ".ts"). An empty
// value selects DefaultExtension; a missing leading dot is added.
func NewImportExtension(extension string) *ImportExtension {
	extension = strings.TrimSpace(extension)
	if extension == "" {
		extension = DefaultExtension
	}

	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	return &ImportExtension{extension: extension}
}

// ID implements Rule.
func (r *ImportExtension) ID() string {
	return ImportExtensionID
}

// Extension returns the enforced extension.
func (r *ImportExtension) Extension() string {
	return r.extension
}

// Meta implements Rule.
func (r *ImportExtension) Meta() Meta {
	return Meta{
		Type:        TypeSuggestion,
		Description: "Require relative imports of source files to include the " + r.extension + " extension",
		URL:         docsURL(ImportExtensionID),
		Fixable:     true,
		Severity:    m.SeverityError,
		Messages: map[m.MessageID]string{
			m.MessageMissingTSExtension: "Relative import '{{importPath}}' must include the " + r.extension + " extension.",
		},
	}
}

// Create implements Rule.
func (r *ImportExtension) Create(ctx *Context) Visitors {
	check := func(node *m.Node) { r.check(ctx, node) }

	return Visitors{
		m.KindImportDeclaration:      check,
		m.KindExportAllDeclaration:   check,
		m.KindExportNamedDeclaration: check,
	}
}

func (r *ImportExtension) check(ctx *Context, decl *m.Node) {
	source := decl.Field(m.FieldSource)

	importPath, ok := ctx.StringValue(source)
	if !ok {
		return
	}

	resolved, ok := ResolveRelative(importPath, ctx.File().Dir)
	if !ok {
		return
	}

	if strings.HasSuffix(importPath, r.extension) || HasExtension(importPath) {
		return
	}

	if !ExistsWithExtension(ctx.Context(), ctx.FS(), resolved, r.extension) {
		return
	}

	ctx.Report(Report{
		Node:      decl,
		MessageID: m.MessageMissingTSExtension,
		Data:      map[string]string{"importPath": importPath},
		Fix: func(fixer Fixer) *m.TextEdit {
			return fixer.ReplaceText(source, `"`+importPath+r.extension+`"`)
		},
	})
}

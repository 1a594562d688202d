package adapter

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// ErrUnsupportedLanguage is returned when a file extension has no grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// SyntaxAdapter encapsulates grammar-specific parsing so the rules can work
// on the language-neutral model.Tree.
type SyntaxAdapter interface {
	// Parse builds a tree for path from content. The grammar is picked from
	// the path's extension.
	Parse(ctx context.Context, path m.Path, content []byte) (*m.Tree, error)
}

// TreeSitterAdapter provides a SyntaxAdapter backed by tree-sitter grammars.
// It is safe for concurrent use; every Parse call creates its own parser.
type TreeSitterAdapter struct{}

// NewTreeSitterAdapter constructs a TreeSitterAdapter.
func NewTreeSitterAdapter() *TreeSitterAdapter {
	return &TreeSitterAdapter{}
}

// Parse builds a model.Tree for the provided path/content pair.
func (a *TreeSitterAdapter) Parse(ctx context.Context, path m.Path, content []byte) (*m.Tree, error) {
	lang, ok := m.LanguageFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammarFor(lang))

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()

	return &m.Tree{
		Root:     convertNode(root, nil),
		Language: lang,
		HasError: root.HasError(),
	}, nil
}

func grammarFor(lang m.Language) *sitter.Language {
	switch lang {
	case m.LanguageTSX:
		return tsx.GetLanguage()
	case m.LanguageJavaScript:
		return javascript.GetLanguage()
	default:
		return typescript.GetLanguage()
	}
}

// fieldAliases maps grammar field names to model field names, per node type.
var fieldAliases = map[string]map[string]string{
	"call_expression":     {"function": m.FieldCallee},
	"import_statement":    {"source": m.FieldSource},
	"export_statement":    {"source": m.FieldSource},
	"variable_declarator": {"name": m.FieldID, "value": m.FieldInit},
}

// convertNode copies the named structure of a tree-sitter node into the model,
// wiring parent back-references and the aliased fields.
func convertNode(n *sitter.Node, parent *m.Node) *m.Node {
	start := n.StartPoint()
	end := n.EndPoint()

	node := &m.Node{
		Kind:      kindOf(n),
		Type:      n.Type(),
		Start:     n.StartByte(),
		End:       n.EndByte(),
		Line:      int(start.Row) + 1,
		Column:    int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndColumn: int(end.Column) + 1,
		Parent:    parent,
	}

	aliases := fieldAliases[n.Type()]
	fieldChildren := make(map[string]*sitter.Node, len(aliases))

	for grammarName, modelName := range aliases {
		if child := n.ChildByFieldName(grammarName); child != nil {
			fieldChildren[modelName] = child
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}

		converted := convertNode(child, node)
		node.Children = append(node.Children, converted)

		for modelName, fieldChild := range fieldChildren {
			if sameNode(child, fieldChild) {
				node.SetField(modelName, converted)
			}
		}
	}

	return node
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func kindOf(n *sitter.Node) m.NodeKind {
	switch n.Type() {
	case "program":
		return m.KindProgram
	case "call_expression":
		return m.KindCallExpression
	case "import_statement":
		return m.KindImportDeclaration
	case "export_statement":
		if isExportAll(n) {
			return m.KindExportAllDeclaration
		}

		return m.KindExportNamedDeclaration
	case "variable_declarator":
		return m.KindVariableDeclarator
	case "lexical_declaration", "variable_declaration":
		return m.KindVariableDeclaration
	case "expression_statement":
		return m.KindExpressionStatement
	case "string":
		return m.KindStringLiteral
	}

	return m.KindOther
}

// isExportAll reports whether an export_statement is `export * from` or
// `export * as ns from`.
func isExportAll(n *sitter.Node) bool {
	if n.ChildByFieldName("source") == nil {
		return false
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		if child.Type() == "*" || child.Type() == "namespace_export" {
			return true
		}
	}

	return false
}

package model

import (
	"strings"
)

// NodeKind is the language-neutral kind of a syntax node. Names follow the
// ESTree vocabulary so rules read the same regardless of grammar.
type NodeKind string

const (
	KindProgram                NodeKind = "Program"
	KindCallExpression         NodeKind = "CallExpression"
	KindImportDeclaration      NodeKind = "ImportDeclaration"
	KindExportAllDeclaration   NodeKind = "ExportAllDeclaration"
	KindExportNamedDeclaration NodeKind = "ExportNamedDeclaration"
	KindVariableDeclarator     NodeKind = "VariableDeclarator"
	KindVariableDeclaration    NodeKind = "VariableDeclaration"
	KindExpressionStatement    NodeKind = "ExpressionStatement"
	KindStringLiteral          NodeKind = "StringLiteral"
	KindOther                  NodeKind = "Other"
)

// Field names exposed on nodes, independent of the grammar's own names.
const (
	FieldCallee = "callee"
	FieldSource = "source"
	FieldID     = "id"
	FieldInit   = "init"
)

// Node is one element of a parsed tree. Parent is a back-reference used for
// upward walks only.
type Node struct {
	Kind      NodeKind
	Type      string // grammar node type, e.g. "lexical_declaration"
	Start     uint32 // byte offset, inclusive
	End       uint32 // byte offset, exclusive
	Line      int    // 1-based
	Column    int    // 1-based
	EndLine   int
	EndColumn int
	Parent    *Node
	Children  []*Node

	fields map[string]*Node
}

// Field returns the child bound to name, or nil.
func (n *Node) Field(name string) *Node {
	if n == nil || n.fields == nil {
		return nil
	}

	return n.fields[name]
}

// SetField binds child to name.
func (n *Node) SetField(name string, child *Node) {
	if n.fields == nil {
		n.fields = make(map[string]*Node)
	}

	n.fields[name] = child
}

// IsStatement reports whether the node is a statement or declaration
// boundary.
func (n *Node) IsStatement() bool {
	if n == nil {
		return false
	}

	switch n.Kind {
	case KindExpressionStatement, KindVariableDeclaration, KindImportDeclaration,
		KindExportAllDeclaration, KindExportNamedDeclaration:
		return true
	}

	return strings.HasSuffix(n.Type, "_statement") ||
		strings.HasSuffix(n.Type, "_declaration")
}

// Text returns the node's slice of content.
func (n *Node) Text(content []byte) string {
	if n == nil || int(n.End) > len(content) || n.Start > n.End {
		return ""
	}

	return string(content[n.Start:n.End])
}

// StringValue returns the unquoted value of a string literal node. The second
// result is false for any other node shape.
func StringValue(n *Node, content []byte) (string, bool) {
	if n == nil || n.Kind != KindStringLiteral {
		return "", false
	}

	raw := n.Text(content)
	if len(raw) < 2 {
		return "", false
	}

	quote := raw[0]
	if (quote != '"' && quote != '\'') || raw[len(raw)-1] != quote {
		return "", false
	}

	return raw[1 : len(raw)-1], true
}

// Tree is a parsed source file.
type Tree struct {
	Root     *Node
	Language Language
	HasError bool
}

// Walk visits every node in pre-order (source order).
func (t *Tree) Walk(fn func(*Node)) {
	if t == nil || t.Root == nil {
		return
	}

	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(n)

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

package rules

import (
	m "tsguard.dev/pkg/tsguard/internal/model"
)

// maxAncestorDepth bounds upward walks so a malformed parent chain cannot loop.
const maxAncestorDepth = 10_000

// NearestEnclosing returns the closest proper ancestor of node satisfying
// stop, or nil when the root is reached first.
func NearestEnclosing(node *m.Node, stop func(*m.Node) bool) *m.Node {
	if node == nil {
		return nil
	}

	current := node.Parent
	for depth := 0; current != nil && depth < maxAncestorDepth; depth++ {
		if stop(current) {
			return current
		}

		current = current.Parent
	}

	return nil
}

// nearestStatement returns the closest statement boundary above node.
func nearestStatement(node *m.Node) *m.Node {
	return NearestEnclosing(node, (*m.Node).IsStatement)
}

// enclosingOfKind returns the nearest statement boundary above node if it has
// the wanted kind. A boundary of any other kind yields nil, so a removal never
// reaches past the first statement.
func enclosingOfKind(node *m.Node, kind m.NodeKind) *m.Node {
	stmt := nearestStatement(node)
	if stmt == nil || stmt.Kind != kind {
		return nil
	}

	return stmt
}

// statementContainers are the parent node types whose children are a plain
// statement list, so dropping one child leaves the parent well formed.
var statementContainers = map[string]struct{}{
	"statement_block": {},
	"switch_case":     {},
	"switch_default":  {},
}

// inStatementList reports whether node is an entry of a statement list.
func inStatementList(node *m.Node) bool {
	if node == nil || node.Parent == nil {
		return false
	}

	if node.Parent.Kind == m.KindProgram {
		return true
	}

	_, ok := statementContainers[node.Parent.Type]

	return ok
}

// removableStatement returns the node whose removal deletes stmt cleanly:
// stmt itself in a statement list, or the export wrapping it. Statements in
// any other slot (a for header, an if body) yield nil.
func removableStatement(stmt *m.Node) *m.Node {
	if stmt == nil {
		return nil
	}

	if inStatementList(stmt) {
		return stmt
	}

	if export := stmt.Parent; export != nil && export.Kind == m.KindExportNamedDeclaration && inStatementList(export) {
		return export
	}

	return nil
}

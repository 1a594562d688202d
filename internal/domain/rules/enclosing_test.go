package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// chain links nodes so each one is the parent of the next and returns the
// last (deepest) node.
func chain(nodes ...*m.Node) *m.Node {
	for i := 1; i < len(nodes); i++ {
		nodes[i].Parent = nodes[i-1]
		nodes[i-1].Children = append(nodes[i-1].Children, nodes[i])
	}

	return nodes[len(nodes)-1]
}

func TestNearestEnclosing(t *testing.T) {
	program := &m.Node{Kind: m.KindProgram, Type: "program"}
	stmt := &m.Node{Kind: m.KindExpressionStatement, Type: "expression_statement"}
	call := &m.Node{Kind: m.KindCallExpression, Type: "call_expression"}
	leaf := chain(program, stmt, call)

	isStmt := func(n *m.Node) bool { return n.Kind == m.KindExpressionStatement }

	assert.Same(t, stmt, NearestEnclosing(leaf, isStmt))
	// Only proper ancestors are checked.
	assert.Nil(t, NearestEnclosing(stmt, isStmt))
	assert.Nil(t, NearestEnclosing(nil, isStmt))
	assert.Nil(t, NearestEnclosing(leaf, func(*m.Node) bool { return false }))
}

func TestNearestEnclosingCyclicParents(t *testing.T) {
	a := &m.Node{Kind: m.KindOther}
	b := &m.Node{Kind: m.KindOther}
	a.Parent = b
	b.Parent = a

	assert.Nil(t, NearestEnclosing(a, func(*m.Node) bool { return false }))
}

func TestEnclosingOfKindStopsAtFirstStatement(t *testing.T) {
	program := &m.Node{Kind: m.KindProgram, Type: "program"}
	outer := &m.Node{Kind: m.KindExpressionStatement, Type: "expression_statement"}
	ret := &m.Node{Kind: m.KindOther, Type: "return_statement"}
	call := &m.Node{Kind: m.KindCallExpression, Type: "call_expression"}
	chain(program, outer, ret, call)

	// The return statement is the nearest boundary, so the outer expression
	// statement is never reached.
	assert.Nil(t, enclosingOfKind(call, m.KindExpressionStatement))
	assert.Same(t, ret, nearestStatement(call))
}

func TestEnclosingOfKindMatch(t *testing.T) {
	program := &m.Node{Kind: m.KindProgram, Type: "program"}
	decl := &m.Node{Kind: m.KindVariableDeclaration, Type: "lexical_declaration"}
	declarator := &m.Node{Kind: m.KindVariableDeclarator, Type: "variable_declarator"}
	chain(program, decl, declarator)

	assert.Same(t, decl, enclosingOfKind(declarator, m.KindVariableDeclaration))
	assert.Nil(t, enclosingOfKind(declarator, m.KindExpressionStatement))
}

func TestRemovableStatement(t *testing.T) {
	newDecl := func() *m.Node {
		return &m.Node{Kind: m.KindVariableDeclaration, Type: "lexical_declaration"}
	}

	program := &m.Node{Kind: m.KindProgram, Type: "program"}
	top := newDecl()
	chain(program, top)

	block := &m.Node{Kind: m.KindOther, Type: "statement_block"}
	nested := newDecl()
	chain(&m.Node{Kind: m.KindProgram, Type: "program"}, block, nested)

	export := &m.Node{Kind: m.KindExportNamedDeclaration, Type: "export_statement"}
	exported := newDecl()
	chain(&m.Node{Kind: m.KindProgram, Type: "program"}, export, exported)

	loop := &m.Node{Kind: m.KindOther, Type: "for_statement"}
	initializer := newDecl()
	chain(&m.Node{Kind: m.KindProgram, Type: "program"}, loop, initializer)

	assert.Same(t, top, removableStatement(top))
	assert.Same(t, nested, removableStatement(nested))
	assert.Same(t, export, removableStatement(exported))
	assert.Nil(t, removableStatement(initializer))
	assert.Nil(t, removableStatement(newDecl()))
	assert.Nil(t, removableStatement(nil))
}

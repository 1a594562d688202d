package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringValue(t *testing.T) {
	content := []byte(`'./a' "./b" ` + "`./c`" + ` 'x`)

	literal := func(start, end uint32) *Node {
		return &Node{Kind: KindStringLiteral, Start: start, End: end}
	}

	got, ok := StringValue(literal(0, 5), content)
	assert.True(t, ok)
	assert.Equal(t, "./a", got)

	got, ok = StringValue(literal(6, 11), content)
	assert.True(t, ok)
	assert.Equal(t, "./b", got)

	_, ok = StringValue(literal(12, 17), content)
	assert.False(t, ok, "template literals are not plain strings")

	_, ok = StringValue(literal(18, 20), content)
	assert.False(t, ok, "unterminated")

	_, ok = StringValue(&Node{Kind: KindOther, Start: 0, End: 5}, content)
	assert.False(t, ok)

	_, ok = StringValue(nil, content)
	assert.False(t, ok)
}

func TestNodeText_OutOfRange(t *testing.T) {
	n := &Node{Start: 2, End: 10}
	assert.Equal(t, "", n.Text([]byte("short")))

	var nilNode *Node
	assert.Equal(t, "", nilNode.Text([]byte("short")))
}

func TestNodeFields(t *testing.T) {
	parent := &Node{Kind: KindCallExpression}
	callee := &Node{Kind: KindOther}

	assert.Nil(t, parent.Field(FieldCallee))
	parent.SetField(FieldCallee, callee)
	assert.Same(t, callee, parent.Field(FieldCallee))

	var nilNode *Node
	assert.Nil(t, nilNode.Field(FieldCallee))
}

func TestNodeIsStatement(t *testing.T) {
	assert.True(t, (&Node{Kind: KindExpressionStatement}).IsStatement())
	assert.True(t, (&Node{Kind: KindOther, Type: "return_statement"}).IsStatement())
	assert.True(t, (&Node{Kind: KindOther, Type: "function_declaration"}).IsStatement())
	assert.False(t, (&Node{Kind: KindCallExpression, Type: "call_expression"}).IsStatement())

	var nilNode *Node
	assert.False(t, nilNode.IsStatement())
}

func TestTreeWalk_PreOrder(t *testing.T) {
	leaf1 := &Node{Type: "a"}
	leaf2 := &Node{Type: "b"}
	mid := &Node{Type: "mid", Children: []*Node{leaf1}}
	root := &Node{Type: "root", Children: []*Node{mid, leaf2}}

	var order []string
	(&Tree{Root: root}).Walk(func(n *Node) { order = append(order, n.Type) })

	assert.Equal(t, []string{"root", "mid", "a", "b"}, order)

	var nilTree *Tree
	nilTree.Walk(func(*Node) { t.Fatal("unexpected visit") })
}

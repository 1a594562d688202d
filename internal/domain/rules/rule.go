// Package rules contains the lint rules and the small contract they share
// with the engine: an activation context, visitor registration, reporting and
// fix proposals.
package rules

import (
	"context"
	"os"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// Rule types, mirroring the usual linter categories.
const (
	TypeProblem    = "problem"
	TypeSuggestion = "suggestion"
)

// Meta describes a rule for registries, help output and message rendering.
type Meta struct {
	Type        string
	Description string
	URL         string
	Fixable     bool
	Severity    m.Severity
	Messages    map[m.MessageID]string
}

// Rule is a pluggable analyzer. Create is called once per file and returns the
// visitors to run during that file's traversal; an empty map disables the rule
// for the file.
type Rule interface {
	ID() string
	Meta() Meta
	Create(ctx *Context) Visitors
}

// Visitor is invoked once per node of the kind it is registered for.
type Visitor func(node *m.Node)

// Visitors maps node kinds to visitors.
type Visitors map[m.NodeKind]Visitor

// FileStat is the existence-check primitive rules may call.
type FileStat interface {
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// Report is what a visitor hands to Context.Report.
type Report struct {
	Node      *m.Node
	MessageID m.MessageID
	Data      map[string]string
	// Fix proposes a single edit. A nil Fix, or a Fix returning nil, means
	// the instance cannot be fixed safely.
	Fix FixFunc
}

// FixFunc builds an edit from the fixer capability.
type FixFunc func(fixer Fixer) *m.TextEdit

// Fixer describes edits without applying them.
type Fixer struct{}

// Remove deletes the node's full source range.
func (Fixer) Remove(node *m.Node) *m.TextEdit {
	if node == nil {
		return nil
	}

	return &m.TextEdit{Start: node.Start, End: node.End}
}

// ReplaceText replaces the node's full source range with text.
func (Fixer) ReplaceText(node *m.Node, text string) *m.TextEdit {
	if node == nil {
		return nil
	}

	return &m.TextEdit{Start: node.Start, End: node.End, NewText: text}
}

// Context is the per-file activation input handed to Rule.Create.
type Context struct {
	ctx     context.Context
	file    m.SourceFile
	content []byte
	fs      FileStat
	report  func(Report)
}

// NewContext builds an activation context. report receives every Report the
// rule emits for this file.
func NewContext(ctx context.Context, file m.SourceFile, content []byte, fs FileStat, report func(Report)) *Context {
	return &Context{
		ctx:     ctx,
		file:    file,
		content: content,
		fs:      fs,
		report:  report,
	}
}

// Context returns the request context for blocking primitives.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Filename returns the path of the file being analyzed.
func (c *Context) Filename() m.Path {
	return c.file.Path
}

// File returns the file being analyzed.
func (c *Context) File() m.SourceFile {
	return c.file
}

// FS returns the filesystem primitive, which may be nil.
func (c *Context) FS() FileStat {
	return c.fs
}

// SourceText returns the exact original text of node.
func (c *Context) SourceText(node *m.Node) string {
	return node.Text(c.content)
}

// StringValue returns the unquoted value of a string literal node.
func (c *Context) StringValue(node *m.Node) (string, bool) {
	return m.StringValue(node, c.content)
}

// Report emits a diagnostic.
func (c *Context) Report(r Report) {
	if c.report == nil || r.Node == nil {
		return
	}

	c.report(r)
}

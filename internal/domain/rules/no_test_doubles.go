package rules

import (
	"strings"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// NoTestDoublesID is the public identifier of the no-test-doubles rule.
const NoTestDoublesID = "no-test-doubles"

// NoTestDoubles forbids mocks, spies, stubs and fakes in test files.
type NoTestDoubles struct {
	banned []string
}

// NewNoTestDoubles creates the rule. extraBanned extends the built-in list of
// test-double libraries whose import is reported.
func NewNoTestDoubles(extraBanned ...string) *NoTestDoubles {
	banned := make([]string, 0, len(defaultBannedModules)+len(extraBanned))
	banned = append(banned, defaultBannedModules...)

	for _, name := range extraBanned {
		if name = strings.TrimSpace(name); name != "" {
			banned = append(banned, name)
		}
	}

	return &NoTestDoubles{banned: banned}
}

// ID implements Rule.
func (r *NoTestDoubles) ID() string {
	return NoTestDoublesID
}

// Meta implements Rule.
func (r *NoTestDoubles) Meta() Meta {
	return Meta{
		Type:        TypeProblem,
		Description: "Disallow mocks, spies, stubs and fakes in test files",
		URL:         docsURL(NoTestDoublesID),
		Fixable:     true,
		Severity:    m.SeverityError,
		Messages: map[m.MessageID]string{
			m.MessageNoMocks: "Test doubles (mocks, stubs, fakes) are not allowed; test against the real implementation.",
			m.MessageNoSpies: "Spies are not allowed; assert on observable behaviour instead.",
		},
	}
}

// BannedModules returns the module names whose import is reported.
func (r *NoTestDoubles) BannedModules() []string {
	return append([]string(nil), r.banned...)
}

// Create implements Rule. Non-test files get no visitors at all.
func (r *NoTestDoubles) Create(ctx *Context) Visitors {
	if !ctx.File().IsTest {
		return Visitors{}
	}

	return Visitors{
		m.KindCallExpression:     func(node *m.Node) { r.checkCall(ctx, node) },
		m.KindImportDeclaration:  func(node *m.Node) { r.checkImport(ctx, node) },
		m.KindVariableDeclarator: func(node *m.Node) { r.checkDeclarator(ctx, node) },
	}
}

func (r *NoTestDoubles) checkCall(ctx *Context, call *m.Node) {
	callee := call.Field(m.FieldCallee)
	if callee == nil {
		return
	}

	family, ok := ClassifyCallee(ctx.SourceText(callee))
	if !ok {
		return
	}

	// Outside a statement list only the call goes, which can leave an empty
	// operand behind (`return ;`, `const s = ;`).
	target := removableStatement(enclosingOfKind(call, m.KindExpressionStatement))
	if target == nil {
		target = call
	}

	messageID := m.MessageNoMocks
	if strings.Contains(string(family), string(FamilySpy)) {
		messageID = m.MessageNoSpies
	}

	ctx.Report(Report{
		Node:      call,
		MessageID: messageID,
		Fix: func(fixer Fixer) *m.TextEdit {
			return fixer.Remove(target)
		},
	})
}

func (r *NoTestDoubles) checkImport(ctx *Context, decl *m.Node) {
	specifier, ok := ctx.StringValue(decl.Field(m.FieldSource))
	if !ok {
		return
	}

	if !ClassifyImportSource(specifier, r.banned) {
		return
	}

	ctx.Report(Report{
		Node:      decl,
		MessageID: m.MessageNoMocks,
		Fix: func(fixer Fixer) *m.TextEdit {
			return fixer.Remove(decl)
		},
	})
}

func (r *NoTestDoubles) checkDeclarator(ctx *Context, declarator *m.Node) {
	init := declarator.Field(m.FieldInit)
	if init == nil || init.Kind != m.KindCallExpression {
		return
	}

	callee := init.Field(m.FieldCallee)
	if callee == nil || !ClassifyDeclaratorInit(ctx.SourceText(callee)) {
		return
	}

	declaration := removableStatement(enclosingOfKind(declarator, m.KindVariableDeclaration))

	ctx.Report(Report{
		Node:      declarator,
		MessageID: m.MessageNoMocks,
		Fix: func(fixer Fixer) *m.TextEdit {
			if declaration == nil {
				return nil
			}

			return fixer.Remove(declaration)
		},
	})
}

// Package domain contains the lint engine and the workflow that drives it.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"tsguard.dev/pkg/tsguard/internal/adapter"
	"tsguard.dev/pkg/tsguard/internal/domain/rules"
	m "tsguard.dev/pkg/tsguard/internal/model"
)

// maxFixPasses bounds the lint/fix loop; each pass applies only
// non-overlapping edits, so dropped edits get another chance next pass.
const maxFixPasses = 10

// Linter runs rules over a single file.
type Linter interface {
	// Lint parses content once and returns every diagnostic the rules report.
	Lint(ctx context.Context, path m.Path, content []byte, ruleSet []rules.Rule) (m.FileResult, error)
	// Fix repeatedly lints and applies fixes until none remain, returning the
	// fixed content and the diagnostics left over.
	Fix(ctx context.Context, path m.Path, content []byte, ruleSet []rules.Rule) ([]byte, m.FileResult, error)
}

// linter handles parsing and single-pass rule dispatch.
type linter struct {
	adapter.SyntaxAdapter
	fs rules.FileStat
}

// NewLinter creates a Linter. fs backs the rules' existence checks.
func NewLinter(syntaxAdapter adapter.SyntaxAdapter, fs rules.FileStat) Linter {
	return &linter{
		SyntaxAdapter: syntaxAdapter,
		fs:            fs,
	}
}

func (l *linter) Lint(ctx context.Context, path m.Path, content []byte, ruleSet []rules.Rule) (m.FileResult, error) {
	result := m.FileResult{Path: path}

	if l.SyntaxAdapter == nil {
		return result, fmt.Errorf("missing syntax adapter")
	}

	tree, err := l.Parse(ctx, path, content)
	if err != nil {
		return result, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if tree.HasError {
		slog.Debug("Source has syntax errors, linting best-effort", "path", path)
	}

	file := m.NewSourceFile(path)
	visitors := make(map[m.NodeKind][]rules.Visitor)
	diagnostics := make([]m.Diagnostic, 0)

	for _, rule := range ruleSet {
		meta := rule.Meta()

		ruleCtx := rules.NewContext(ctx, file, content, l.fs, func(report rules.Report) {
			diagnostics = append(diagnostics, buildDiagnostic(rule.ID(), meta, report))
		})

		for kind, visit := range rule.Create(ruleCtx) {
			visitors[kind] = append(visitors[kind], visit)
		}
	}

	if len(visitors) == 0 {
		result.Diagnostics = diagnostics
		return result, nil
	}

	tree.Walk(func(node *m.Node) {
		for _, visit := range visitors[node.Kind] {
			visit(node)
		}
	})

	sortDiagnostics(diagnostics)
	result.Diagnostics = diagnostics

	return result, nil
}

func (l *linter) Fix(ctx context.Context, path m.Path, content []byte, ruleSet []rules.Rule) ([]byte, m.FileResult, error) {
	current := content
	fixed := 0

	for pass := 0; pass < maxFixPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return current, m.FileResult{Path: path, Fixed: fixed}, err
		}

		result, err := l.Lint(ctx, path, current, ruleSet)
		if err != nil {
			return current, m.FileResult{Path: path, Fixed: fixed}, err
		}

		next, applied := ApplyFixes(current, result.Diagnostics)
		if applied == 0 {
			result.Fixed = fixed
			return current, result, nil
		}

		slog.Debug("Applied fixes", "path", path, "pass", pass, "applied", applied)

		fixed += applied
		current = next
	}

	result, err := l.Lint(ctx, path, current, ruleSet)
	result.Fixed = fixed

	return current, result, err
}

func buildDiagnostic(ruleID string, meta rules.Meta, report rules.Report) m.Diagnostic {
	template, ok := meta.Messages[report.MessageID]
	if !ok {
		slog.Warn("Rule reported an undeclared message id", "rule", ruleID, "messageId", report.MessageID)
		template = string(report.MessageID)
	}

	severity := meta.Severity
	if severity == "" {
		severity = m.SeverityError
	}

	diagnostic := m.Diagnostic{
		RuleID:    ruleID,
		MessageID: report.MessageID,
		Message:   renderMessage(template, report.Data),
		Severity:  severity,
		Data:      report.Data,
		Line:      report.Node.Line,
		Column:    report.Node.Column,
		EndLine:   report.Node.EndLine,
		EndColumn: report.Node.EndColumn,
	}

	if report.Fix != nil {
		diagnostic.Fix = report.Fix(rules.Fixer{})
	}

	return diagnostic
}

// renderMessage substitutes {{key}} placeholders with data values.
func renderMessage(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}

	pairs := make([]string, 0, len(data)*4)
	for key, value := range data {
		pairs = append(pairs, "{{"+key+"}}", value, "{{ "+key+" }}", value)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

func sortDiagnostics(diagnostics []m.Diagnostic) {
	sort.SliceStable(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}

		if a.Column != b.Column {
			return a.Column < b.Column
		}

		return a.RuleID < b.RuleID
	})
}

package controller

import (
	"fmt"
	"sort"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

type ruleCount struct {
	rule  string
	count int
}

// formatDiagnostic renders one diagnostic as
// "path:line:col  severity  message  rule/messageId".
func formatDiagnostic(path m.Path, d m.Diagnostic) string {
	return fmt.Sprintf("%s:%d:%d  %s  %s  %s/%s",
		path, d.Line, d.Column, d.Severity, d.Message, d.RuleID, d.MessageID)
}

// sortedRuleCounts orders rules by descending count, then by id.
func sortedRuleCounts(summary m.Summary) []ruleCount {
	counts := make([]ruleCount, 0, len(summary.ByRule))
	for rule, count := range summary.ByRule {
		counts = append(counts, ruleCount{rule: rule, count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}

		return counts[i].rule < counts[j].rule
	})

	return counts
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}

// summaryLine is the one-line verdict printed after every run.
func summaryLine(summary m.Summary) string {
	if summary.Diagnostics == 0 {
		return fmt.Sprintf("✔ No problems found in %s", plural(summary.Files, "file"))
	}

	line := fmt.Sprintf("✖ %s in %s", plural(summary.Diagnostics, "problem"), plural(summary.Files, "file"))
	if summary.Fixable > 0 {
		line += fmt.Sprintf(" (%d fixable with --fix)", summary.Fixable)
	}

	return line
}

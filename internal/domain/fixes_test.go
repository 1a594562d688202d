package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

func withFix(start, end uint32, text string) m.Diagnostic {
	return m.Diagnostic{Fix: &m.TextEdit{Start: start, End: end, NewText: text}}
}

func TestApplyFixes(t *testing.T) {
	content := []byte("0123456789")

	tests := []struct {
		name        string
		diagnostics []m.Diagnostic
		want        string
		applied     int
	}{
		{
			name:        "no fixes",
			diagnostics: []m.Diagnostic{{RuleID: "r"}},
			want:        "0123456789",
			applied:     0,
		},
		{
			name:        "disjoint edits in any order",
			diagnostics: []m.Diagnostic{withFix(8, 10, "X"), withFix(0, 2, "")},
			want:        "234567X",
			applied:     2,
		},
		{
			name:        "adjacent edits both apply",
			diagnostics: []m.Diagnostic{withFix(0, 3, "a"), withFix(3, 5, "b")},
			want:        "ab56789",
			applied:     2,
		},
		{
			name:        "outer edit wins over nested edit",
			diagnostics: []m.Diagnostic{withFix(4, 6, "inner"), withFix(2, 8, "")},
			want:        "0189",
			applied:     1,
		},
		{
			name:        "partial overlap keeps the earlier edit",
			diagnostics: []m.Diagnostic{withFix(1, 5, "A"), withFix(3, 7, "B")},
			want:        "0A56789",
			applied:     1,
		},
		{
			name:        "insertion",
			diagnostics: []m.Diagnostic{withFix(10, 10, "!")},
			want:        "0123456789!",
			applied:     1,
		},
		{
			name:        "invalid ranges are dropped",
			diagnostics: []m.Diagnostic{withFix(5, 2, "x"), withFix(8, 20, "y")},
			want:        "0123456789",
			applied:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applied := ApplyFixes(content, tt.diagnostics)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.applied, applied)
		})
	}

	assert.Equal(t, "0123456789", string(content), "input must not be modified")
}

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryAdd(t *testing.T) {
	var s Summary

	s.Add(FileResult{
		Path: "a.test.ts",
		Diagnostics: []Diagnostic{
			{RuleID: "no-test-doubles", Fix: &TextEdit{Start: 0, End: 4}},
			{RuleID: "no-test-doubles"},
			{RuleID: "import-extension", Fix: &TextEdit{Start: 10, End: 15, NewText: "'./a.ts'"}},
		},
		Fixed: 1,
	})
	s.Add(FileResult{Path: "b.ts", Err: errors.New("boom")})

	assert.Equal(t, Summary{
		Files:       2,
		Diagnostics: 3,
		Fixable:     2,
		Fixed:       1,
		Errors:      1,
		ByRule:      map[string]int{"no-test-doubles": 2, "import-extension": 1},
	}, s)
}

func TestTextEditOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TextEdit
		want bool
	}{
		{"disjoint", TextEdit{Start: 0, End: 3}, TextEdit{Start: 5, End: 8}, false},
		{"touching", TextEdit{Start: 0, End: 3}, TextEdit{Start: 3, End: 8}, false},
		{"nested", TextEdit{Start: 0, End: 10}, TextEdit{Start: 3, End: 4}, true},
		{"partial", TextEdit{Start: 0, End: 5}, TextEdit{Start: 4, End: 8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

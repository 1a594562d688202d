package domain

import (
	"sort"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

// ApplyFixes applies the fixes carried by diagnostics to content. Edits are
// taken in source order; an edit overlapping one already accepted is skipped.
// It returns the new content and the number of edits applied.
func ApplyFixes(content []byte, diagnostics []m.Diagnostic) ([]byte, int) {
	edits := make([]m.TextEdit, 0, len(diagnostics))

	for _, d := range diagnostics {
		if d.Fix == nil || d.Fix.Start > d.Fix.End || int(d.Fix.End) > len(content) {
			continue
		}

		edits = append(edits, *d.Fix)
	}

	if len(edits) == 0 {
		return content, 0
	}

	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}

		return edits[i].End > edits[j].End
	})

	accepted := make([]m.TextEdit, 0, len(edits))

	for _, edit := range edits {
		if len(accepted) > 0 {
			if last := accepted[len(accepted)-1]; edit.Overlaps(last) || edit.Start < last.End {
				continue
			}
		}

		accepted = append(accepted, edit)
	}

	out := make([]byte, 0, len(content))
	cursor := uint32(0)

	for _, edit := range accepted {
		out = append(out, content[cursor:edit.Start]...)
		out = append(out, edit.NewText...)
		cursor = edit.End
	}

	out = append(out, content[cursor:]...)

	return out, len(accepted)
}

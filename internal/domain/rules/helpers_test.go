package rules

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tsguard.dev/pkg/tsguard/internal/adapter"
	m "tsguard.dev/pkg/tsguard/internal/model"
)

// activation captures one rule activation over a parsed snippet.
type activation struct {
	content  []byte
	visitors Visitors
	reports  []Report
}

// fix returns the edit proposed by report i, or nil.
func (a *activation) fix(i int) *m.TextEdit {
	if a.reports[i].Fix == nil {
		return nil
	}

	return a.reports[i].Fix(Fixer{})
}

// applied returns the content after applying report i's fix alone.
func (a *activation) applied(i int) string {
	edit := a.fix(i)
	if edit == nil {
		return string(a.content)
	}

	out := append([]byte{}, a.content[:edit.Start]...)
	out = append(out, edit.NewText...)
	out = append(out, a.content[edit.End:]...)

	return string(out)
}

func (a *activation) messageIDs() []m.MessageID {
	ids := make([]m.MessageID, 0, len(a.reports))
	for _, r := range a.reports {
		ids = append(ids, r.MessageID)
	}

	return ids
}

// runRule parses src as path and drives rule's visitors over the tree the
// way the engine does.
func runRule(t *testing.T, rule Rule, path m.Path, src string, fs FileStat) *activation {
	t.Helper()

	content := []byte(src)
	tree, err := adapter.NewTreeSitterAdapter().Parse(context.Background(), path, content)
	require.NoError(t, err)

	act := &activation{content: content}
	ctx := NewContext(context.Background(), m.NewSourceFile(path), content, fs, func(r Report) {
		act.reports = append(act.reports, r)
	})

	act.visitors = rule.Create(ctx)

	tree.Walk(func(n *m.Node) {
		if visit, ok := act.visitors[n.Kind]; ok {
			visit(n)
		}
	})

	return act
}

// writeProject creates files (relative path -> content) under a temp dir and
// returns its path.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, body := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(body), 0o644))
	}

	return root
}

// failingFS returns err for every lookup.
type failingFS struct {
	err error
}

func (f failingFS) FileInfo(context.Context, m.Path) (os.FileInfo, error) {
	return nil, f.err
}

var errPermission = errors.New("permission denied")

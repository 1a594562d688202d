package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

func TestTUI_PrintsDirectlyWhenNotATerminal(t *testing.T) {
	ctx := context.Background()
	out := &bytes.Buffer{}
	ui := NewTUI(out)

	require.NoError(t, ui.Start(ctx, WithLintMode()))
	ui.DisplayFileResult(ctx, sampleResult())
	ui.DisplayFileResult(ctx, m.FileResult{Path: "clean.ts"})
	ui.DisplayDiff(ctx, "a.ts", "--- a.ts\n+++ a.ts\n@@ -1 +1 @@\n-x\n+y\n")

	// Nothing is written before the summary.
	assert.Empty(t, out.String())

	var summary m.Summary
	summary.Add(sampleResult())
	require.NoError(t, ui.DisplaySummary(ctx, summary))

	ui.Wait(ctx)
	ui.Close(ctx)

	text := out.String()
	assert.Contains(t, text, "src/user.test.ts")
	assert.Contains(t, text, "3:7")
	assert.Contains(t, text, "no-test-doubles/noMocks")
	assert.Contains(t, text, "+y")
	assert.Contains(t, text, "✖ 1 problem in 1 file")
	assert.NotContains(t, text, "clean.ts")
}

func TestTUI_WatchModeStreams(t *testing.T) {
	ctx := context.Background()
	out := &bytes.Buffer{}
	ui := NewTUI(out)

	require.NoError(t, ui.Start(ctx, WithWatchMode()))
	assert.Contains(t, out.String(), "watching for changes")

	ui.DisplayFileResult(ctx, m.FileResult{Path: "x.ts", Err: errors.New("parse failed")})
	assert.Contains(t, out.String(), "parse failed")
}

func TestResultsModel_Keys(t *testing.T) {
	model := newResultsModel("line 1\nline 2", "✔ No problems found in 1 file", 80, 24)

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, updated.(resultsModel).quitting)
	assert.Empty(t, updated.View())

	updated, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	resized := updated.(resultsModel)
	assert.Equal(t, 100, resized.viewport.Width)
	assert.Equal(t, 30-reservedLines, resized.viewport.Height)
}

func TestResultsModel_View(t *testing.T) {
	model := newResultsModel("first\nsecond", "✖ 2 problems in 1 file", 80, 24)

	view := model.View()
	assert.Contains(t, view, "tsguard")
	assert.Contains(t, view, "✖ 2 problems in 1 file")
	assert.Contains(t, view, "first")
	assert.Contains(t, view, "q: quit")
}

func TestViewportHeight(t *testing.T) {
	assert.Equal(t, 20, viewportHeight(24))
	assert.Equal(t, 1, viewportHeight(3))
}

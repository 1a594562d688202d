package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "tsguard.dev/pkg/tsguard/internal/model"
)

func TestYAMLReportStore_SaveReport(t *testing.T) {
	store := NewReportStore()
	path := filepath.Join(t.TempDir(), "reports", "tsguard.yaml")

	report := m.Report{
		Version:   1,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Summary:   m.Summary{Files: 2, Diagnostics: 1, Errors: 1, ByRule: map[string]int{"no-test-doubles": 1}},
		Files: []m.FileResult{
			{
				Path: "src/foo.test.ts",
				Diagnostics: []m.Diagnostic{{
					RuleID:    "no-test-doubles",
					MessageID: m.MessageNoMocks,
					Message:   "no mocks",
					Severity:  m.SeverityError,
					Line:      3,
					Column:    1,
					Fix:       &m.TextEdit{Start: 10, End: 30},
				}},
			},
			{Path: "src/broken.ts", Err: errors.New("parse failed")},
		},
	}

	require.NoError(t, store.SaveReport(m.Path(path), report))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), "message_id: noMocks"))
	assert.True(t, strings.Contains(string(raw), "error: parse failed"))

	loaded, err := store.LoadReport(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)
	assert.Equal(t, 2, loaded.Summary.Files)
	require.Len(t, loaded.Files, 2)
	require.Len(t, loaded.Files[0].Diagnostics, 1)
	assert.Equal(t, m.MessageNoMocks, loaded.Files[0].Diagnostics[0].MessageID)
	require.NotNil(t, loaded.Files[0].Diagnostics[0].Fix)
	assert.Equal(t, uint32(30), loaded.Files[0].Diagnostics[0].Fix.End)
	assert.Equal(t, "parse failed", loaded.Files[1].ErrMessage)
}

func TestYAMLReportStore_LoadReport_Missing(t *testing.T) {
	_, err := NewReportStore().LoadReport(m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}

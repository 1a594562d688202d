package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	domainmocks "tsguard.dev/pkg/tsguard/internal/domain/mocks"
)

// withMockWorkflow swaps the shared workflow for a mock for the test's duration.
func withMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)
	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

// executeCmd runs sub under a fresh root command with logging sent to a
// temporary file and returns what it printed.
func executeCmd(t *testing.T, sub *cobra.Command, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	if sub != nil {
		cmd.AddCommand(sub)
	}

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	logPath := filepath.Join(t.TempDir(), "tsguard.log")
	cmd.SetArgs(append(args, "--"+logFileFlagName, logPath))

	err := cmd.Execute()

	return out.String(), err
}

// setConfig overrides a viper key and restores the previous value afterwards.
func setConfig(t *testing.T, key string, value any) {
	t.Helper()

	previous := viper.Get(key)
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, previous) })
}

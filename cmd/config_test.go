package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "tsguard", configBaseName)
	assert.Equal(t, "tsguard.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "ignore", ignoreFlagName)
	assert.Equal(t, "parallel", lintParallelFlagName)
	assert.Equal(t, "lint.parallel", lintParallelConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, "paths.ignore", ignoreConfigKey)
	assert.Equal(t, 0, defaultLintParallel)
	assert.Equal(t, "TSGUARD", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.True(t, viper.GetBool("rules.no-test-doubles.enabled"))
	assert.True(t, viper.GetBool("rules.import-extension.enabled"))
	assert.Equal(t, ".ts", viper.GetString(importExtensionConfigKey))
	assert.Empty(t, viper.GetStringSlice(bannedModulesConfigKey))
}

func TestRuleEnabledKey(t *testing.T) {
	assert.Equal(t, "rules.import-extension.enabled", ruleEnabledKey("import-extension"))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "nested.log")
	configureLogger(logPath, true)

	slog.Debug("verbose message", "key", "value")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "verbose message")
	assert.Contains(t, string(contents), "key=value")
}

func TestConfigureLogger_RespectsLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
	setConfig(t, logLevelKey, "error")

	logPath := filepath.Join(t.TempDir(), "quiet.log")
	configureLogger(logPath, false)

	slog.Info("dropped")
	slog.Error("kept")

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(contents), "dropped")
	assert.Contains(t, string(contents), "kept")
}

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tsguard.dev/pkg/tsguard/internal/domain/rules"
)

func TestRulesCmd_ListsRegisteredRules(t *testing.T) {
	setConfig(t, ruleEnabledKey(rules.ImportExtensionID), false)

	output, err := executeCmd(t, newRulesCmd(), "rules")
	require.NoError(t, err)

	assert.Contains(t, output, "RULE")
	assert.Contains(t, output, rules.NoTestDoublesID)
	assert.Contains(t, output, rules.ImportExtensionID)
	assert.Contains(t, output, "true")
	assert.Contains(t, output, "false")
}

func TestRulesCmd_RejectsArgs(t *testing.T) {
	_, err := executeCmd(t, newRulesCmd(), "rules", "extra")
	require.Error(t, err)
}

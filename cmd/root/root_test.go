package root_test

import (
	"testing"

	"finman/ledger-csv/cmd/root"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "ledger-csv", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "Categorize")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRun)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	root.Init()

	inputFlag := root.Cmd.PersistentFlags().Lookup("input")
	assert.NotNil(t, inputFlag)
	assert.Equal(t, "i", inputFlag.Shorthand)

	outputFlag := root.Cmd.PersistentFlags().Lookup("output")
	assert.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	rulesFlag := root.Cmd.PersistentFlags().Lookup("rules")
	assert.NotNil(t, rulesFlag)
	assert.Equal(t, "r", rulesFlag.Shorthand)
}

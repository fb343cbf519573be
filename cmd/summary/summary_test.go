package summary_test

import (
	"testing"

	"finman/ledger-csv/cmd/summary"

	"github.com/stretchr/testify/assert"
)

func TestSummaryCommand_Metadata(t *testing.T) {
	assert.Equal(t, "summary", summary.Cmd.Use)
	assert.Contains(t, summary.Cmd.Short, "Summarize")
	assert.NotNil(t, summary.Cmd.Run)
}

func TestSummaryCommand_Flags(t *testing.T) {
	formatFlag := summary.Cmd.Flags().Lookup("format")
	assert.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)
	assert.Equal(t, "table", formatFlag.DefValue)
}

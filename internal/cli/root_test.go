package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, name string) bool {
	t.Helper()
	for _, c := range rootCmd.Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	assert.True(t, findCommand(t, "collect"))
	assert.True(t, findCommand(t, "check"))
}

func TestRootCommand_Help(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--help"})

	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "collect")
	assert.Contains(t, out, "check")
	assert.Contains(t, out, "PROJ/RUN/CLONE")
}

func TestCollectCommand_RequiresTwoArgs(t *testing.T) {
	err := collectCmd.Args(collectCmd, []string{"only-one"})
	assert.Error(t, err)
	assert.NoError(t, collectCmd.Args(collectCmd, []string{"dir", "out.log"}))
}

func TestCheckCommand_RequiresTwoArgs(t *testing.T) {
	err := checkCmd.Args(checkCmd, []string{"a", "b", "c"})
	assert.Error(t, err)
	assert.NoError(t, checkCmd.Args(checkCmd, []string{"in.log", "report.txt"}))
}

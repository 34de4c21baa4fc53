package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "ask", "migrate", "extract", "import"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "procure-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestAskCommand_Flags(t *testing.T) {
	profile := askCmd.Flags().Lookup("profile")
	require.NotNil(t, profile)
	assert.Equal(t, "general", profile.DefValue)

	dryRun := askCmd.Flags().Lookup("dry-run")
	require.NotNil(t, dryRun)
	assert.Equal(t, "false", dryRun.DefValue)
}

func TestAskCommand_RequiresQuestion(t *testing.T) {
	require.Error(t, askCmd.Args(askCmd, nil))
	require.NoError(t, askCmd.Args(askCmd, []string{"best", "price", "for", "lc1d09"}))
}

func TestExtractCommand_Flags(t *testing.T) {
	require.NotNil(t, extractCmd.Flags().Lookup("file"))
	mode := extractCmd.Flags().Lookup("mode")
	require.NotNil(t, mode)
	assert.Equal(t, "formal", mode.DefValue)
	require.NotNil(t, extractCmd.Flags().Lookup("dry-run"))
}

func TestImportCommand_HasHistory(t *testing.T) {
	var found bool
	for _, c := range importCmd.Commands() {
		if c.Name() == "history" {
			found = true
		}
	}
	assert.True(t, found)
	require.NotNil(t, importHistoryCmd.Flags().Lookup("file"))
}

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	for _, sub := range []string{"serve", "migrate"} {
		assert.Contains(t, output, sub, "Help missing %q command", sub)
	}
	for _, flag := range []string{"--config", "--database-driver", "--port", "--invite-use-policy"} {
		assert.Contains(t, output, flag, "Help missing %q flag", flag)
	}
}

func TestMigrateCommand_SQLite(t *testing.T) {
	dir := t.TempDir()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"migrate", "--database-file", filepath.Join(dir, "guild.db")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Migrations completed successfully")

	// Applying again is a no-op.
	cmd = NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"migrate", "--database-file", filepath.Join(dir, "guild.db")})
	require.NoError(t, cmd.Execute())
}

func TestMigrateCommand_InvalidConfig(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"migrate", "--database-driver", "postgres"})

	require.Error(t, cmd.Execute())
}

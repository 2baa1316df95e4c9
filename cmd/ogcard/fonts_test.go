package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFontsCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fonts.db")

	out, err := runCLI(t, "fonts", "add", "Inter", "https://example.com/inter.ttf", "--weight", "700", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "Registered Inter 700 normal\n", out)

	out, err = runCLI(t, "fonts", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "https://example.com/inter.ttf")

	_, err = runCLI(t, "fonts", "remove", "Inter", "--db", db)
	require.NoError(t, err)

	_, err = runCLI(t, "fonts", "remove", "Inter", "--db", db)
	assert.Error(t, err)
}

func TestFontsAddRejectsStyle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "fonts.db")
	_, err := runCLI(t, "fonts", "add", "Inter", "https://example.com/i.ttf", "--style", "oblique", "--db", db)
	assert.ErrorContains(t, err, "style must be normal or italic")
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	registerSubcommands(root)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// chdir changes into dir for the duration of the test, restoring the
// previous working directory on cleanup. Equivalent to t.Chdir, which
// requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func initRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)
	return root
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "prevet "), "unexpected output: %q", out)
}

func TestHooksInstallWritesExecutableHook(t *testing.T) {
	root := initRepo(t)
	chdir(t, root)

	out, err := runCommand(t, "hooks", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "Installed prevet pre-commit hook")

	hookPath := filepath.Join(root, ".git", "hooks", "pre-commit")
	content, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "exec prevet check")

	info, err := os.Stat(hookPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "hook must be executable")
}

func TestHooksInstallIsIdempotent(t *testing.T) {
	root := initRepo(t)
	chdir(t, root)

	_, err := runCommand(t, "hooks", "install")
	require.NoError(t, err)
	out, err := runCommand(t, "hooks", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "already installed")
}

func TestHooksInstallBacksUpForeignHook(t *testing.T) {
	root := initRepo(t)
	chdir(t, root)

	hooksDir := filepath.Join(root, ".git", "hooks")
	require.NoError(t, os.MkdirAll(hooksDir, 0o755))
	foreign := "#!/bin/sh\necho custom\n"
	hookPath := filepath.Join(hooksDir, "pre-commit")
	require.NoError(t, os.WriteFile(hookPath, []byte(foreign), 0o755))

	out, err := runCommand(t, "hooks", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "backed up")

	backup, err := os.ReadFile(filepath.Join(hooksDir, hookBackupName))
	require.NoError(t, err)
	assert.Equal(t, foreign, string(backup))

	// Removal restores the foreign hook.
	out, err = runCommand(t, "hooks", "remove")
	require.NoError(t, err)
	assert.Contains(t, out, "restored")

	restored, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.Equal(t, foreign, string(restored))
}

func TestHooksRemoveWithoutInstall(t *testing.T) {
	root := initRepo(t)
	chdir(t, root)

	out, err := runCommand(t, "hooks", "remove")
	require.NoError(t, err)
	assert.Contains(t, out, "No prevet pre-commit hook installed")
}

func TestHooksInspectStates(t *testing.T) {
	root := initRepo(t)
	chdir(t, root)

	out, err := runCommand(t, "hooks", "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "not installed")

	_, err = runCommand(t, "hooks", "install")
	require.NoError(t, err)

	out, err = runCommand(t, "hooks", "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "prevet hook installed")
}

func TestSplitCategories(t *testing.T) {
	assert.Nil(t, splitCategories(""))
	assert.Nil(t, splitCategories("  "))
	assert.Equal(t, []string{"style", "data"}, splitCategories("style, data"))
	assert.Equal(t, []string{"syntax"}, splitCategories("syntax,"))
}

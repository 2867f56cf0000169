/*
Copyright © 2025 OpsForge HQ <oss@opsforgehq.dev>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opsforgehq/prevet/internal/gitctx"
)

const (
	hookMarker     = "# Installed by prevet hooks install"
	hookBackupName = "pre-commit.prevet-backup"
)

var hookScript = "#!/bin/sh\n" + hookMarker + "\nexec prevet check\n"

// hooksCmd represents the hooks command
var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage the git pre-commit hook",
	Long: `Hooks installs prevet as the repository's pre-commit hook so every
commit is validated automatically.

Examples:
  prevet hooks install   # Install the pre-commit hook
  prevet hooks remove    # Remove it (restoring any backup)
  prevet hooks inspect   # Show installation status`,
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pre-commit hook",
	Long: `Install writes a pre-commit hook that runs 'prevet check'. An existing
hook not written by prevet is backed up first and restored on removal.`,
	RunE: runHooksInstall,
}

var hooksRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the installed hook",
	Long: `Remove uninstalls the prevet pre-commit hook, restoring any previously
backed up hook if one exists.`,
	RunE: runHooksRemove,
}

var hooksInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show hook installation status",
	RunE:  runHooksInspect,
}

func init() {
	hooksCmd.AddCommand(hooksInstallCmd)
	hooksCmd.AddCommand(hooksRemoveCmd)
	hooksCmd.AddCommand(hooksInspectCmd)
}

func hookPaths() (hookPath, backupPath string, err error) {
	root, err := gitctx.RepoRoot(".")
	if err != nil {
		return "", "", err
	}
	hooksDir := filepath.Join(root, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create hooks directory: %w", err)
	}
	return filepath.Join(hooksDir, "pre-commit"), filepath.Join(hooksDir, hookBackupName), nil
}

func hookInstalled(hookPath string) bool {
	content, err := os.ReadFile(hookPath) // #nosec G304 -- repo-rooted .git/hooks path
	return err == nil && strings.Contains(string(content), hookMarker)
}

func runHooksInstall(cmd *cobra.Command, _ []string) error {
	hookPath, backupPath, err := hookPaths()
	if err != nil {
		return err
	}

	if hookInstalled(hookPath) {
		fmt.Fprintln(cmd.OutOrStdout(), "prevet pre-commit hook already installed")
		return nil
	}

	// Preserve a foreign hook before overwriting it.
	if _, err := os.Stat(hookPath); err == nil {
		if err := os.Rename(hookPath, backupPath); err != nil {
			return fmt.Errorf("failed to back up existing hook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Existing hook backed up to %s\n", hookBackupName)
	}

	if err := os.WriteFile(hookPath, []byte(hookScript), 0o755); err != nil { // #nosec G306 -- git hooks must be executable
		return fmt.Errorf("failed to write pre-commit hook: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Installed prevet pre-commit hook")
	return nil
}

func runHooksRemove(cmd *cobra.Command, _ []string) error {
	hookPath, backupPath, err := hookPaths()
	if err != nil {
		return err
	}

	if !hookInstalled(hookPath) {
		fmt.Fprintln(cmd.OutOrStdout(), "No prevet pre-commit hook installed")
		return nil
	}
	if err := os.Remove(hookPath); err != nil {
		return fmt.Errorf("failed to remove hook: %w", err)
	}
	if _, err := os.Stat(backupPath); err == nil {
		if err := os.Rename(backupPath, hookPath); err != nil {
			return fmt.Errorf("failed to restore backed up hook: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Removed prevet hook and restored the previous one")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Removed prevet pre-commit hook")
	return nil
}

func runHooksInspect(cmd *cobra.Command, _ []string) error {
	hookPath, backupPath, err := hookPaths()
	if err != nil {
		return err
	}

	switch {
	case hookInstalled(hookPath):
		fmt.Fprintln(cmd.OutOrStdout(), "pre-commit: prevet hook installed")
	default:
		if _, err := os.Stat(hookPath); err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "pre-commit: foreign hook present")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "pre-commit: not installed")
		}
	}
	if _, err := os.Stat(backupPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "backup: %s present\n", hookBackupName)
	}
	return nil
}

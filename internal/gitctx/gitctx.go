// Package gitctx resolves the repository context a prevet run operates in.
package gitctx

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// RepoRoot resolves the top-level working-tree path for target. go-git
// is preferred; the git CLI is the fallback so prevet still works on
// repo layouts go-git cannot open.
func RepoRoot(target string) (string, error) {
	repo, err := git.PlainOpenWithOptions(target, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		if wt, wtErr := repo.Worktree(); wtErr == nil {
			return wt.Filesystem.Root(), nil
		}
	}

	if _, err := exec.LookPath("git"); err != nil {
		return "", fmt.Errorf("not a git repository (and git CLI unavailable): %s", target)
	}
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = target
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s", target)
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", fmt.Errorf("not a git repository: %s", target)
	}
	return filepath.Clean(root), nil
}

// ChangedFiles returns the current change-set (staged plus unstaged) as
// a set of slash-separated paths relative to the repo root. Returns nil
// when the repository state cannot be read; callers treat nil as "scan
// everything".
func ChangedFiles(root string) map[string]struct{} {
	if files := changedGoGit(root); files != nil {
		return files
	}
	return changedCLI(root)
}

func changedGoGit(root string) map[string]struct{} {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil
	}
	st, err := wt.Status()
	if err != nil {
		return nil
	}
	files := make(map[string]struct{})
	for path, s := range st {
		// Both staged and unstaged changes are candidates for validation
		if s.Staging != git.Unmodified || s.Worktree != git.Unmodified {
			files[filepath.ToSlash(path)] = struct{}{}
		}
	}
	return files
}

func changedCLI(root string) map[string]struct{} {
	if _, err := exec.LookPath("git"); err != nil {
		return nil
	}
	files := make(map[string]struct{})
	ran := false
	for _, args := range [][]string{
		{"diff", "--name-only"},
		{"diff", "--cached", "--name-only"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = root
		out, err := cmd.Output()
		if err != nil {
			continue
		}
		ran = true
		for _, line := range strings.Split(string(out), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				files[filepath.ToSlash(line)] = struct{}{}
			}
		}
	}
	if !ran {
		return nil
	}
	return files
}

// Package ignore provides gitignore-based file filtering for discovery.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/opsforgehq/prevet/pkg/safeio"
)

// IgnoreFileName is the repo-level override file read on top of .gitignore.
const IgnoreFileName = ".prevetignore"

// Matcher provides gitignore-based file filtering
type Matcher struct {
	root    string
	matcher gitignore.Matcher
}

// NewMatcher creates a matcher with layered ignore files:
// 1. .gitignore and related git ignore files (foundation)
// 2. .prevetignore (repo overrides)
// 3. ~/.prevet/.prevetignore (user overrides)
func NewMatcher(repoRoot string) (*Matcher, error) {
	fs := osfs.New(repoRoot)

	var allPatterns []gitignore.Pattern

	// Always ignored regardless of repo configuration
	defaultPatterns := []string{".git/**"}
	for _, pattern := range defaultPatterns {
		allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
	}

	// Layer 1: standard gitignore patterns. ReadPatterns with nil reads
	// .gitignore, global excludes, and .git/info/exclude.
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		allPatterns = append(allPatterns, gitPatterns...)
	}

	// Layer 2: repo-level .prevetignore overrides
	if repoPatterns, err := readIgnoreFile(repoRoot, filepath.Join(repoRoot, IgnoreFileName)); err == nil {
		for _, pattern := range repoPatterns {
			allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
		}
	}

	// Layer 3: user-level ~/.prevet/.prevetignore overrides
	if homeDir, err := os.UserHomeDir(); err == nil {
		userIgnorePath := filepath.Join(homeDir, ".prevet", IgnoreFileName)
		if userPatterns, err := readIgnoreFile(homeDir, userIgnorePath); err == nil {
			for _, pattern := range userPatterns {
				allPatterns = append(allPatterns, gitignore.ParsePattern(pattern, nil))
			}
		}
	}

	return &Matcher{
		root:    repoRoot,
		matcher: gitignore.NewMatcher(allPatterns),
	}, nil
}

// readIgnoreFile reads patterns from a text file (like .prevetignore)
func readIgnoreFile(baseDir, path string) ([]string, error) {
	content, err := safeio.ReadContained(baseDir, path)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}

	return patterns, nil
}

// IsIgnored checks if a file path should be ignored
func (m *Matcher) IsIgnored(path string) bool {
	return m.match(path, false)
}

// IsIgnoredDir checks if a directory should be ignored (and thus skipped during traversal)
func (m *Matcher) IsIgnoredDir(path string) bool {
	return m.match(path, true)
}

func (m *Matcher) match(path string, isDir bool) bool {
	relPath := path
	if filepath.IsAbs(path) {
		if rel, err := filepath.Rel(m.root, path); err == nil {
			relPath = rel
		}
	}
	relPath = filepath.ToSlash(relPath)

	pathParts := splitPath(relPath)
	if len(pathParts) == 0 {
		return false
	}
	return m.matcher.Match(pathParts, isDir)
}

// splitPath converts a slash-separated path into components for go-git matching
func splitPath(path string) []string {
	if path == "" || path == "." {
		return []string{}
	}

	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")

	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}

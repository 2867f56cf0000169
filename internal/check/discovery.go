package check

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/opsforgehq/prevet/pkg/ignore"
)

// DiscoverOptions narrows file discovery for one category pass.
type DiscoverOptions struct {
	// Reserved is the reserved-subtree prefix (relative to root) that is
	// never scanned, e.g. "vendor".
	Reserved string

	// Ignore holds extra category-specific ignore globs from config.
	Ignore []string

	// Matcher applies .gitignore/.prevetignore filtering when non-nil.
	Matcher *ignore.Matcher

	// Changed restricts results to this change-set when non-nil.
	Changed map[string]struct{}
}

// Discover enumerates files under root matching pattern, excluding
// directories, the reserved subtree, and ignored paths. Results are
// slash-separated paths relative to root, sorted for stable reports.
func Discover(root, pattern string, opts DiscoverOptions) ([]string, error) {
	absPattern := filepath.Join(root, filepath.FromSlash(pattern))
	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid discovery pattern %q: %w", pattern, err)
	}

	reserved := strings.TrimSuffix(filepath.ToSlash(opts.Reserved), "/")

	fileSet := make(map[string]struct{})
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(root, match)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if reserved != "" && (rel == reserved || strings.HasPrefix(rel, reserved+"/")) {
			continue
		}
		if opts.Matcher != nil && opts.Matcher.IsIgnored(rel) {
			continue
		}
		if ignoredByPatterns(rel, opts.Ignore) {
			continue
		}
		if opts.Changed != nil {
			if _, ok := opts.Changed[rel]; !ok {
				continue
			}
		}
		fileSet[rel] = struct{}{}
	}

	files := make([]string, 0, len(fileSet))
	for rel := range fileSet {
		files = append(files, rel)
	}
	sort.Strings(files)
	return files, nil
}

func ignoredByPatterns(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// Package safeio guards file reads against path traversal. All of
// prevet's well-known files (.prevet.yaml, .puppet-lint.rc,
// .prevetignore) are read through ReadContained so a crafted path can
// never escape the repo root or the user config directory.
package safeio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ReadContained reads a file only if it resolves inside baseDir.
func ReadContained(baseDir, filePath string) ([]byte, error) {
	baseAbs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errors.New("failed to resolve base directory")
	}
	fileAbs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, errors.New("failed to resolve file path")
	}

	rel, err := filepath.Rel(baseAbs, fileAbs)
	if err != nil {
		return nil, errors.New("failed to compute relative path")
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, errors.New("file path is outside base directory")
	}

	// #nosec G304 -- containment verified above
	return os.ReadFile(fileAbs)
}

package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataRunner parses structured-data files in-process with yaml.v3
// instead of shelling out, the one category with no external tool.
type DataRunner struct {
	root string
}

// NewDataRunner creates the YAML data runner.
func NewDataRunner(root string) *DataRunner {
	return &DataRunner{root: root}
}

// Category returns the category this runner handles
func (r *DataRunner) Category() Category {
	return CategoryData
}

// Check parses one YAML file, accepting multi-document streams
func (r *DataRunner) Check(ctx context.Context, file string) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{File: file, Passed: false, Diagnostics: err.Error()}
	}

	path := filepath.Join(r.root, filepath.FromSlash(file))
	f, err := os.Open(path) // #nosec G304 -- path comes from repo-rooted discovery
	if err != nil {
		return Outcome{File: file, Passed: false, Diagnostics: err.Error()}
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	for {
		var doc interface{}
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Outcome{
				File:        file,
				Passed:      false,
				Diagnostics: fmt.Sprintf("YAML parse error: %v", err),
			}
		}
	}
	return Outcome{File: file, Passed: true}
}

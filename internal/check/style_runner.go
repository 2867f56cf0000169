package check

import (
	"context"

	"github.com/opsforgehq/prevet/pkg/tools"
)

// StyleRunner lints manifests with puppet-lint. Style findings are
// distinct from syntax validity; a file can pass here and still fail
// the syntax category.
type StyleRunner struct {
	root     string
	toolset  *tools.ToolSet
	lintArgs []string
}

// NewStyleRunner creates the manifest style runner. lintArgs carries
// either the default check exclusions or nothing when a
// .puppet-lint.rc at the repo root takes over.
func NewStyleRunner(root string, ts *tools.ToolSet, lintArgs []string) *StyleRunner {
	return &StyleRunner{root: root, toolset: ts, lintArgs: lintArgs}
}

// Category returns the category this runner handles
func (r *StyleRunner) Category() Category {
	return CategoryStyle
}

// Check runs puppet-lint against one manifest
func (r *StyleRunner) Check(ctx context.Context, file string) Outcome {
	args := append([]string{"--with-filename"}, r.lintArgs...)
	args = append(args, file)

	result, err := r.toolset.Executor().Execute(ctx, tools.ExecuteOptions{
		Tool:    tools.ToolPuppetLint,
		Args:    args,
		WorkDir: r.root,
	})
	if err != nil {
		return Outcome{File: file, Passed: false, Diagnostics: err.Error()}
	}
	return Outcome{
		File:        file,
		Passed:      result.ExitCode == 0,
		Diagnostics: combineOutput(result.Stdout, result.Stderr),
	}
}

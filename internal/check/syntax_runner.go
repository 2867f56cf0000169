package check

import (
	"context"

	"github.com/opsforgehq/prevet/pkg/tools"
)

// SyntaxRunner validates manifest syntax with `puppet parser validate`.
type SyntaxRunner struct {
	root    string
	toolset *tools.ToolSet
}

// NewSyntaxRunner creates the manifest syntax runner.
func NewSyntaxRunner(root string, ts *tools.ToolSet) *SyntaxRunner {
	return &SyntaxRunner{root: root, toolset: ts}
}

// Category returns the category this runner handles
func (r *SyntaxRunner) Category() Category {
	return CategorySyntax
}

// Check parses one manifest without evaluating it
func (r *SyntaxRunner) Check(ctx context.Context, file string) Outcome {
	result, err := r.toolset.Executor().Execute(ctx, tools.ExecuteOptions{
		Tool:    tools.ToolPuppet,
		Args:    []string{"parser", "validate", file},
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

// TemplateRunner validates compiled (EPP) templates with
// `puppet epp validate`.
type TemplateRunner struct {
	root    string
	toolset *tools.ToolSet
}

// NewTemplateRunner creates the EPP template runner.
func NewTemplateRunner(root string, ts *tools.ToolSet) *TemplateRunner {
	return &TemplateRunner{root: root, toolset: ts}
}

// Category returns the category this runner handles
func (r *TemplateRunner) Category() Category {
	return CategoryTemplate
}

// Check validates one EPP template
func (r *TemplateRunner) Check(ctx context.Context, file string) Outcome {
	result, err := r.toolset.Executor().Execute(ctx, tools.ExecuteOptions{
		Tool:    tools.ToolPuppet,
		Args:    []string{"epp", "validate", file},
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

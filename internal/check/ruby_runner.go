package check

import (
	"bytes"
	"context"

	"github.com/opsforgehq/prevet/pkg/tools"
)

// ERBRunner validates script-templates in two stages: `erb -P -x -T -`
// renders the template to ruby source, then `ruby -c` parses it. The
// pass/fail decision trusts the parser stage's exit status; the
// `Syntax OK` sentinel is stripped from display output only.
type ERBRunner struct {
	root    string
	toolset *tools.ToolSet
}

// NewERBRunner creates the ERB template runner.
func NewERBRunner(root string, ts *tools.ToolSet) *ERBRunner {
	return &ERBRunner{root: root, toolset: ts}
}

// Category returns the category this runner handles
func (r *ERBRunner) Category() Category {
	return CategoryERB
}

// Check renders one ERB template and parses the generated ruby
func (r *ERBRunner) Check(ctx context.Context, file string) Outcome {
	rendered, err := r.toolset.Executor().Execute(ctx, tools.ExecuteOptions{
		Tool:    tools.ToolERB,
		Args:    []string{"-P", "-x", "-T", "-", file},
		WorkDir: r.root,
	})
	if err != nil {
		return Outcome{File: file, Passed: false, Diagnostics: err.Error()}
	}
	if rendered.ExitCode != 0 {
		return Outcome{
			File:        file,
			Passed:      false,
			Diagnostics: stripSentinel(combineOutput(rendered.Stdout, rendered.Stderr)),
		}
	}

	parsed, err := r.toolset.Executor().Execute(ctx, tools.ExecuteOptions{
		Tool:    tools.ToolRuby,
		Args:    []string{"-c"},
		WorkDir: r.root,
		Stdin:   bytes.NewReader(rendered.Stdout),
	})
	if err != nil {
		return Outcome{File: file, Passed: false, Diagnostics: err.Error()}
	}
	return Outcome{
		File:        file,
		Passed:      parsed.ExitCode == 0,
		Diagnostics: stripSentinel(combineOutput(parsed.Stdout, parsed.Stderr)),
	}
}

// ScriptRunner validates interpreted ruby scripts with `ruby -c`.
type ScriptRunner struct {
	root    string
	toolset *tools.ToolSet
}

// NewScriptRunner creates the ruby script runner.
func NewScriptRunner(root string, ts *tools.ToolSet) *ScriptRunner {
	return &ScriptRunner{root: root, toolset: ts}
}

// Category returns the category this runner handles
func (r *ScriptRunner) Category() Category {
	return CategoryScript
}

// Check parses one ruby script
func (r *ScriptRunner) Check(ctx context.Context, file string) Outcome {
	result, err := r.toolset.Executor().Execute(ctx, tools.ExecuteOptions{
		Tool:    tools.ToolRuby,
		Args:    []string{"-c", file},
		WorkDir: r.root,
	})
	if err != nil {
		return Outcome{File: file, Passed: false, Diagnostics: err.Error()}
	}
	return Outcome{
		File:        file,
		Passed:      result.ExitCode == 0,
		Diagnostics: stripSentinel(combineOutput(result.Stdout, result.Stderr)),
	}
}

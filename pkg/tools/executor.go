/*
Copyright © 2025 OpsForge HQ <oss@opsforgehq.dev>
*/
package tools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ExecuteOptions configures a single validator invocation.
type ExecuteOptions struct {
	// Tool name (e.g., "puppet-lint", "ruby")
	Tool string

	// Args to pass to the tool
	Args []string

	// WorkDir is the working directory (defaults to current directory)
	WorkDir string

	// Stdin to pipe to the tool (optional)
	Stdin io.Reader
}

// ExecuteResult contains the output of a validator invocation.
type ExecuteResult struct {
	// ExitCode from the tool
	ExitCode int

	// Stdout contains standard output
	Stdout []byte

	// Stderr contains standard error
	Stderr []byte
}

// Executor runs external validator tools. The concrete strategy (direct
// PATH invocation vs. bundle-wrapped) is selected once at startup and
// used uniformly for every invocation.
type Executor interface {
	// Execute runs a tool with the given options. A non-zero tool exit
	// is reported via ExecuteResult.ExitCode, not as an error; errors
	// are reserved for failures to start the process at all.
	Execute(ctx context.Context, opts ExecuteOptions) (*ExecuteResult, error)

	// IsAvailable checks if this executor can run the specified tool
	IsAvailable(tool string) bool

	// Name returns the executor name for logging
	Name() string
}

// DirectExecutor invokes tools straight from the execution path.
type DirectExecutor struct {
	// paths caches resolved binary paths per tool name
	paths map[string]string
}

// NewDirectExecutor creates an executor that resolves tools via
// environment overrides and PATH lookup.
func NewDirectExecutor() *DirectExecutor {
	return &DirectExecutor{paths: make(map[string]string)}
}

// Name returns the executor name
func (e *DirectExecutor) Name() string {
	return "direct"
}

// IsAvailable checks if the tool resolves locally
func (e *DirectExecutor) IsAvailable(tool string) bool {
	path, err := e.resolve(tool)
	return err == nil && path != ""
}

func (e *DirectExecutor) resolve(tool string) (string, error) {
	if cached, ok := e.paths[tool]; ok {
		return cached, nil
	}
	path, err := ResolveBinary(tool, ResolveOptions{EnvOverride: EnvOverrideName(tool)})
	if err != nil {
		return "", err
	}
	e.paths[tool] = path
	return path, nil
}

// Execute runs the tool directly
func (e *DirectExecutor) Execute(ctx context.Context, opts ExecuteOptions) (*ExecuteResult, error) {
	toolPath, err := e.resolve(opts.Tool)
	if err != nil {
		return nil, err
	}

	// #nosec G204 -- toolPath is resolved via ResolveBinary (env override or PATH)
	cmd := exec.CommandContext(ctx, toolPath, opts.Args...)
	return run(cmd, opts)
}

// BundleExecutor routes every tool invocation through a dependency
// bundle runner (`bundle exec <tool> ...`) so the validators run with
// the project-pinned gem versions.
type BundleExecutor struct {
	bundlePath string
}

// NewBundleExecutor creates an executor wrapping invocations with the
// resolved bundle runner binary.
func NewBundleExecutor(bundlePath string) *BundleExecutor {
	return &BundleExecutor{bundlePath: bundlePath}
}

// Name returns the executor name
func (e *BundleExecutor) Name() string {
	return "bundle"
}

// IsAvailable reports whether the bundle runner itself is present. The
// bundled tools are validated collectively by `bundle check`, not per tool.
func (e *BundleExecutor) IsAvailable(tool string) bool {
	_, err := os.Stat(e.bundlePath)
	return err == nil
}

// Execute runs `bundle exec <tool> <args>` in the working directory
func (e *BundleExecutor) Execute(ctx context.Context, opts ExecuteOptions) (*ExecuteResult, error) {
	args := append([]string{"exec", opts.Tool}, opts.Args...)
	// #nosec G204 -- bundlePath resolved via ResolveBinary; tool names come from the fixed category table
	cmd := exec.CommandContext(ctx, e.bundlePath, args...)
	return run(cmd, opts)
}

func run(cmd *exec.Cmd, opts ExecuteOptions) (*ExecuteResult, error) {
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &ExecuteResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("%s execution failed: %w", opts.Tool, err)
	}
	return result, nil
}

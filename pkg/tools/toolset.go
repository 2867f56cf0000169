/*
Copyright © 2025 OpsForge HQ <oss@opsforgehq.dev>
*/
package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/opsforgehq/prevet/pkg/logger"
)

// Validator tool names required for a full check run.
const (
	ToolPuppetLint = "puppet-lint"
	ToolPuppet     = "puppet"
	ToolERB        = "erb"
	ToolRuby       = "ruby"
)

// Dependency bundle runner (Bundler).
const (
	BundleRunner     = "bundle"
	BundleDescriptor = "Gemfile"
)

// RequiredTools lists every external validator a check run depends on.
var RequiredTools = []string{ToolPuppetLint, ToolPuppet, ToolERB, ToolRuby}

// ToolSet binds the required validator tools to a single invocation
// strategy. Resolved once before any file is scanned; immutable after.
type ToolSet struct {
	executor Executor
	wrapped  bool
}

// Executor returns the invocation strategy for this tool set.
func (ts *ToolSet) Executor() Executor {
	return ts.executor
}

// Wrapped reports whether invocations route through the bundle runner.
func (ts *ToolSet) Wrapped() bool {
	return ts.wrapped
}

// Describe returns one line per required tool for doctor-style output.
func (ts *ToolSet) Describe() []string {
	lines := make([]string, 0, len(RequiredTools))
	for _, tool := range RequiredTools {
		if ts.wrapped {
			lines = append(lines, fmt.Sprintf("%-12s via %s exec", tool, BundleRunner))
			continue
		}
		path, err := ResolveBinary(tool, ResolveOptions{EnvOverride: EnvOverrideName(tool)})
		if err != nil {
			lines = append(lines, fmt.Sprintf("%-12s MISSING", tool))
			continue
		}
		lines = append(lines, fmt.Sprintf("%-12s %s", tool, path))
	}
	return lines
}

// Resolve selects the invocation strategy for the repo at root and
// verifies every required tool up front. This is an all-or-nothing
// precondition check: any missing tool or an inconsistent bundle
// environment is a fatal error, returned before any file is scanned.
func Resolve(ctx context.Context, root string) (*ToolSet, error) {
	descriptor := filepath.Join(root, BundleDescriptor)
	if _, err := os.Stat(descriptor); err == nil {
		bundlePath, lookErr := ResolveBinary(BundleRunner, ResolveOptions{EnvOverride: EnvOverrideName(BundleRunner)})
		if lookErr != nil {
			// Descriptor without a runner: fall back to direct invocation.
			logger.Warn("Gemfile present but bundle runner not found; using tools from PATH")
			return resolveDirect(root)
		}
		if err := verifyBundle(ctx, bundlePath, root); err != nil {
			return nil, err
		}
		logger.Debug("tool resolution: bundle mode", logger.String("bundle", bundlePath))
		return &ToolSet{executor: NewBundleExecutor(bundlePath), wrapped: true}, nil
	}
	return resolveDirect(root)
}

func resolveDirect(root string) (*ToolSet, error) {
	var missing []string
	for _, tool := range RequiredTools {
		if _, err := ResolveBinary(tool, ResolveOptions{EnvOverride: EnvOverrideName(tool)}); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required tools not found: %s", strings.Join(missing, ", "))
	}
	logger.Debug("tool resolution: direct mode", logger.String("root", root))
	return &ToolSet{executor: NewDirectExecutor()}, nil
}

// verifyBundle runs `bundle check` to confirm the pinned dependency set
// is installed and consistent. A failing check is fatal: running the
// validators against a broken bundle would produce misleading results.
func verifyBundle(ctx context.Context, bundlePath, root string) error {
	// #nosec G204 -- bundlePath resolved via ResolveBinary
	cmd := exec.CommandContext(ctx, bundlePath, "check")
	result, err := run(cmd, ExecuteOptions{Tool: BundleRunner, WorkDir: root})
	if err != nil {
		return fmt.Errorf("bundle check could not run: %w", err)
	}
	if result.ExitCode != 0 {
		detail := strings.TrimSpace(string(result.Stdout))
		if detail == "" {
			detail = strings.TrimSpace(string(result.Stderr))
		}
		return fmt.Errorf("bundle environment is inconsistent (bundle check exit %d): %s", result.ExitCode, detail)
	}
	return nil
}

package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeFakeTool drops an executable shell script into dir.
func writeFakeTool(t *testing.T, dir, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool shims require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	content := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil { // #nosec G306 -- test shim must be executable
		t.Fatalf("write fake tool %s: %v", name, err)
	}
	return path
}

// fakeToolDir creates a bin dir with all required tools and puts it first on PATH.
func fakeToolDir(t *testing.T, extraScripts map[string]string) string {
	t.Helper()
	bin := t.TempDir()
	for _, tool := range RequiredTools {
		writeFakeTool(t, bin, tool, "exit 0")
	}
	for name, script := range extraScripts {
		writeFakeTool(t, bin, name, script)
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	return bin
}

func TestEnvOverrideName(t *testing.T) {
	cases := map[string]string{
		"puppet":      "PREVET_TOOL_PUPPET",
		"puppet-lint": "PREVET_TOOL_PUPPET_LINT",
		"bundle":      "PREVET_TOOL_BUNDLE",
	}
	for tool, want := range cases {
		if got := EnvOverrideName(tool); got != want {
			t.Errorf("EnvOverrideName(%q) = %q, want %q", tool, got, want)
		}
	}
}

func TestResolveBinaryEnvOverride(t *testing.T) {
	bin := t.TempDir()
	fake := writeFakeTool(t, bin, "puppet", "exit 0")
	t.Setenv("PREVET_TOOL_PUPPET", fake)

	got, err := ResolveBinary("puppet", ResolveOptions{EnvOverride: "PREVET_TOOL_PUPPET"})
	if err != nil {
		t.Fatalf("ResolveBinary failed: %v", err)
	}
	if got != fake {
		t.Errorf("ResolveBinary = %q, want %q", got, fake)
	}
}

func TestResolveBinaryMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := ResolveBinary("definitely-not-a-tool", ResolveOptions{})
	if err == nil {
		t.Fatal("expected error for missing tool")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestResolveDirectMode(t *testing.T) {
	fakeToolDir(t, nil)
	root := t.TempDir()

	ts, err := Resolve(context.Background(), root)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ts.Wrapped() {
		t.Error("expected direct mode without Gemfile")
	}
	if ts.Executor().Name() != "direct" {
		t.Errorf("executor = %q, want direct", ts.Executor().Name())
	}
}

func TestResolveDirectModeMissingTool(t *testing.T) {
	// PATH with only some of the required tools.
	bin := t.TempDir()
	writeFakeTool(t, bin, ToolRuby, "exit 0")
	t.Setenv("PATH", bin)

	_, err := Resolve(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("expected error when tools are missing")
	}
	if !strings.Contains(err.Error(), ToolPuppet) {
		t.Errorf("error should name missing tools: %v", err)
	}
}

func TestResolveBundleMode(t *testing.T) {
	fakeToolDir(t, map[string]string{BundleRunner: "exit 0"})
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, BundleDescriptor), []byte("source 'https://rubygems.org'\n"), 0o644); err != nil {
		t.Fatalf("write Gemfile: %v", err)
	}

	ts, err := Resolve(context.Background(), root)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !ts.Wrapped() {
		t.Error("expected bundle mode with Gemfile and bundle runner present")
	}
}

func TestResolveBundleInconsistent(t *testing.T) {
	fakeToolDir(t, map[string]string{BundleRunner: "echo 'gems missing' >&2; exit 1"})
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, BundleDescriptor), []byte("source 'https://rubygems.org'\n"), 0o644); err != nil {
		t.Fatalf("write Gemfile: %v", err)
	}

	_, err := Resolve(context.Background(), root)
	if err == nil {
		t.Fatal("expected fatal error for inconsistent bundle")
	}
	if !strings.Contains(err.Error(), "inconsistent") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestResolveGemfileWithoutRunnerFallsBack(t *testing.T) {
	bin := t.TempDir()
	for _, tool := range RequiredTools {
		writeFakeTool(t, bin, tool, "exit 0")
	}
	t.Setenv("PATH", bin)
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, BundleDescriptor), []byte("source 'https://rubygems.org'\n"), 0o644); err != nil {
		t.Fatalf("write Gemfile: %v", err)
	}

	ts, err := Resolve(context.Background(), root)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ts.Wrapped() {
		t.Error("expected direct fallback when bundle runner is absent")
	}
}

func TestDirectExecutorCapturesExit(t *testing.T) {
	bin := t.TempDir()
	writeFakeTool(t, bin, "failing-tool", "echo boom >&2; exit 3")
	t.Setenv("PATH", bin)

	result, err := NewDirectExecutor().Execute(context.Background(), ExecuteOptions{Tool: "failing-tool"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
	if !strings.Contains(string(result.Stderr), "boom") {
		t.Errorf("stderr = %q, want to contain boom", result.Stderr)
	}
}

func TestBundleExecutorWrapsInvocation(t *testing.T) {
	bin := t.TempDir()
	// Echo the argv so the test can assert on the exec wrapping.
	bundle := writeFakeTool(t, bin, "bundle", `echo "$@"`)

	result, err := NewBundleExecutor(bundle).Execute(context.Background(), ExecuteOptions{
		Tool: "puppet",
		Args: []string{"parser", "validate", "site.pp"},
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	got := strings.TrimSpace(string(result.Stdout))
	want := "exec puppet parser validate site.pp"
	if got != want {
		t.Errorf("bundle argv = %q, want %q", got, want)
	}
}

func TestDescribeDirect(t *testing.T) {
	fakeToolDir(t, nil)
	ts, err := Resolve(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	lines := ts.Describe()
	if len(lines) != len(RequiredTools) {
		t.Fatalf("Describe returned %d lines, want %d", len(lines), len(RequiredTools))
	}
	for i, tool := range RequiredTools {
		if !strings.Contains(lines[i], tool) {
			t.Errorf("line %d = %q, want to mention %s", i, lines[i], tool)
		}
	}
}

func TestDirectExecutorStdin(t *testing.T) {
	bin := t.TempDir()
	writeFakeTool(t, bin, "cat-tool", "cat")
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	result, err := NewDirectExecutor().Execute(context.Background(), ExecuteOptions{
		Tool:  "cat-tool",
		Stdin: strings.NewReader(fmt.Sprintln("rendered template")),
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(string(result.Stdout), "rendered template") {
		t.Errorf("stdout = %q", result.Stdout)
	}
}

package tools

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/opsforgehq/prevet/pkg/logger"
)

// ResolveOptions configures how binary resolution works
type ResolveOptions struct {
	// EnvOverride specifies an environment variable name to check for explicit override
	// e.g., "PREVET_TOOL_PUPPET" would check the PREVET_TOOL_PUPPET environment variable
	EnvOverride string
}

// EnvOverrideName derives the override variable for a tool name,
// e.g. "puppet-lint" -> "PREVET_TOOL_PUPPET_LINT".
func EnvOverrideName(tool string) string {
	normalized := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(tool))
	return "PREVET_TOOL_" + normalized
}

// ResolveBinary finds the path to a tool binary following the resolution order:
// 1. Environment variable override (if specified)
// 2. PATH lookup
//
// Returns the full path to the binary and any error encountered.
func ResolveBinary(toolName string, opts ResolveOptions) (string, error) {
	logger.Debug("starting binary resolution", logger.String("tool", toolName), logger.String("env_override", opts.EnvOverride))

	// 1. Check environment variable override
	if opts.EnvOverride != "" {
		if overridePath := os.Getenv(opts.EnvOverride); overridePath != "" {
			if _, err := os.Stat(overridePath); err == nil {
				logger.Debug("resolution successful: env override", logger.String("path", overridePath))
				return overridePath, nil
			}
			logger.Debug("env override path invalid", logger.String("path", overridePath))
		}
	}

	// 2. PATH lookup
	pathBinary, err := exec.LookPath(toolName)
	if err == nil {
		logger.Debug("resolution successful: PATH", logger.String("path", pathBinary))
		return pathBinary, nil
	}

	var suggestions []string
	if opts.EnvOverride != "" {
		suggestions = append(suggestions, fmt.Sprintf("set %s=/path/to/%s", opts.EnvOverride, toolName))
	}
	suggestions = append(suggestions, fmt.Sprintf("install %s and ensure it's in your PATH", toolName))

	return "", fmt.Errorf("tool %s not found: %s", toolName, strings.Join(suggestions, " or "))
}

// Package config loads and validates prevet's repo-level configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/opsforgehq/prevet/pkg/safeio"
)

// File names read from the repo root.
const (
	ConfigFileName = ".prevet.yaml"
	LintRCFileName = ".puppet-lint.rc"
)

// Category keys accepted under `categories:` in .prevet.yaml.
const (
	CategoryStyle    = "style"
	CategorySyntax   = "syntax"
	CategoryTemplate = "template"
	CategoryERB      = "erb"
	CategoryScript   = "script"
	CategoryData     = "data"
)

// Config holds all configuration for a prevet run
type Config struct {
	Version         int                       `mapstructure:"version"`
	ReservedSubtree string                    `mapstructure:"reserved_subtree"`
	Categories      map[string]CategoryConfig `mapstructure:"categories"`
	Lint            LintConfig                `mapstructure:"lint"`
}

// CategoryConfig holds per-category overrides
type CategoryConfig struct {
	Enabled *bool    `mapstructure:"enabled"`
	Ignore  []string `mapstructure:"ignore"`
}

// LintConfig holds style-lint options for the manifest style category
type LintConfig struct {
	// DisabledChecks lists puppet-lint check names to disable, each
	// rendered as a --no-<name>-check flag.
	DisabledChecks []string `mapstructure:"disabled_checks"`
}

var defaultConfig = Config{
	Version:         1,
	ReservedSubtree: "vendor",
	Lint: LintConfig{
		DisabledChecks: []string{"140chars", "autoloader_layout"},
	},
}

// Load reads .prevet.yaml from the repo root when present, validates it
// against the embedded schema, and overlays it on the defaults. A
// missing file yields the defaults; an invalid file is an error.
func Load(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", defaultConfig.Version)
	v.SetDefault("reserved_subtree", defaultConfig.ReservedSubtree)
	v.SetDefault("lint.disabled_checks", defaultConfig.Lint.DisabledChecks)

	path := filepath.Join(root, ConfigFileName)
	data, err := safeio.ReadContained(root, path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := defaultConfig
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	// Schema validation happens on the raw document so unknown keys and
	// type mismatches are reported before viper's lenient unmarshal.
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s is not valid YAML: %w", ConfigFileName, err)
	}
	if doc != nil {
		result, err := ValidateDocument(doc)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, fmt.Errorf("%s failed schema validation: %s", ConfigFileName, formatErrors(result.Errors))
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", ConfigFileName, err)
	}
	return &cfg, nil
}

func formatErrors(errs []ValidationError) string {
	out := ""
	for i, e := range errs {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return out
}

// CategoryEnabled reports whether a category is enabled (default true).
func (c *Config) CategoryEnabled(name string) bool {
	cat, ok := c.Categories[name]
	if !ok || cat.Enabled == nil {
		return true
	}
	return *cat.Enabled
}

// CategoryIgnore returns extra ignore patterns for a category.
func (c *Config) CategoryIgnore(name string) []string {
	return c.Categories[name].Ignore
}

// LintArgs returns the flag set passed to puppet-lint. When a
// .puppet-lint.rc exists at the repo root it fully replaces the
// default exclusions (puppet-lint reads the rc file itself), so no
// flags are injected. There is no merging.
func (c *Config) LintArgs(root string) []string {
	if _, err := os.Stat(filepath.Join(root, LintRCFileName)); err == nil {
		return nil
	}
	args := make([]string, 0, len(c.Lint.DisabledChecks))
	for _, check := range c.Lint.DisabledChecks {
		args = append(args, fmt.Sprintf("--no-%s-check", check))
	}
	return args
}

/*
Copyright © 2025 OpsForge HQ <oss@opsforgehq.dev>
*/
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opsforgehq/prevet/internal/check"
	"github.com/opsforgehq/prevet/internal/gitctx"
	"github.com/opsforgehq/prevet/pkg/config"
	"github.com/opsforgehq/prevet/pkg/exitcode"
	"github.com/opsforgehq/prevet/pkg/logger"
	"github.com/opsforgehq/prevet/pkg/tools"
)

// checkCmd runs the full validation sequence; this is the hook payload.
var checkCmd = &cobra.Command{
	Use:   "check [target]",
	Short: "Validate manifests, templates, scripts, and data files",
	Long: `Check locates the required validator tools, enumerates candidate files
per category from the repository top level, runs each file through its
validator, and reports a colored pass/fail line per file. The exit code
gates the commit: 0 when everything passed, 1 otherwise.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runCheck(cmd, args))
	},
}

func init() {
	checkCmd.Flags().Bool("staged", false, "Restrict validation to the current git change-set")
	checkCmd.Flags().String("categories", "", "Comma-separated category subset (style,syntax,template,erb,script,data)")
	checkCmd.Flags().String("format", "pretty", "Output format (pretty|json)")
}

// runCheck returns the process exit code so tests can exercise the full
// sequence without os.Exit.
func runCheck(cmd *cobra.Command, args []string) int {
	staged, categories, format := checkFlags(cmd.Flags())
	noColor, _ := cmd.Flags().GetBool("no-color")

	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	root, err := gitctx.RepoRoot(target)
	if err != nil {
		logger.Error("Repository resolution failed", logger.Err(err))
		return exitcode.FileSystemError
	}

	cfg, err := config.Load(root)
	if err != nil {
		logger.Error("Configuration invalid", logger.Err(err))
		return exitcode.ConfigError
	}

	// Tool resolution precedes any file enumeration; a missing tool or a
	// broken bundle environment rejects the commit before scanning.
	toolset, err := tools.Resolve(cmd.Context(), root)
	if err != nil {
		logger.Error("Tool resolution failed", logger.Err(err))
		return exitcode.CheckFailed
	}

	opts := check.Options{
		StagedOnly: staged,
		Categories: categories,
	}
	if format != "json" {
		opts.Reporter = check.NewPrettyReporter(cmd.OutOrStdout(), noColor)
	}

	engine, err := check.NewEngine(root, cfg, toolset, opts)
	if err != nil {
		logger.Error("Engine initialization failed", logger.Err(err))
		return exitcode.FileSystemError
	}

	result, err := engine.Run(contextOrBackground(cmd))
	if err != nil {
		logger.Error("Check run failed", logger.Err(err))
		return exitcode.CheckFailed
	}

	if format == "json" {
		data, merr := json.MarshalIndent(result, "", "  ")
		if merr != nil {
			logger.Error("Failed to encode result", logger.Err(merr))
			return exitcode.CheckFailed
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	if !result.Ok() {
		return exitcode.CheckFailed
	}
	return exitcode.Success
}

// checkFlags pulls the check options out of a parsed flag set.
func checkFlags(flags *pflag.FlagSet) (staged bool, categories []string, format string) {
	staged, _ = flags.GetBool("staged")
	categoriesFlag, _ := flags.GetString("categories")
	format, _ = flags.GetString("format")
	return staged, splitCategories(categoriesFlag), format
}

func splitCategories(flag string) []string {
	if strings.TrimSpace(flag) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(flag, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

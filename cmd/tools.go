package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsforgehq/prevet/internal/gitctx"
	"github.com/opsforgehq/prevet/pkg/exitcode"
	"github.com/opsforgehq/prevet/pkg/logger"
	"github.com/opsforgehq/prevet/pkg/tools"
)

// toolsCmd reports the resolved validator tool set, doctor-style.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Show resolved validator tools",
	Long: `Tools resolves the external validators the same way 'prevet check'
does and prints one line per tool. Exits non-zero when resolution fails,
which is the same precondition that would reject a commit.`,
	Run: func(cmd *cobra.Command, _ []string) {
		root, err := gitctx.RepoRoot(".")
		if err != nil {
			// Tool resolution itself does not need a repo; fall back to cwd.
			root = "."
		}
		toolset, err := tools.Resolve(cmd.Context(), root)
		if err != nil {
			logger.Error("Tool resolution failed", logger.Err(err))
			os.Exit(exitcode.CheckFailed)
		}
		if toolset.Wrapped() {
			fmt.Fprintln(cmd.OutOrStdout(), "invocation: wrapped via bundle exec")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "invocation: direct from PATH")
		}
		for _, line := range toolset.Describe() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsforgehq/prevet/pkg/buildinfo"
)

// versionCmd prints the binary version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show prevet version",
	Run: func(cmd *cobra.Command, _ []string) {
		extended, _ := cmd.Flags().GetBool("extended")
		fmt.Fprintf(cmd.OutOrStdout(), "prevet %s\n", buildinfo.Version())
		if extended {
			if mv := buildinfo.ModuleVersion(); mv != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "module version: %s\n", mv)
			}
		}
	},
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Show extended build information")
}

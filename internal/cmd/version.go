package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modctx/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show CLI version information",
		Long: `Display version information for the modctx CLI.

Shows the CLI version, build information, and the detected runtime
binary.`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, _ []string) error {
	info := version.GetInfo()

	shell := ""
	if cfg != nil {
		shell = cfg.Runtime.Shell
	}
	rt := version.DetectRuntimeBinary(shell)

	fmt.Fprintln(cmd.OutOrStdout(), version.FullVersionString(info, rt))
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints build information. It needs no configuration.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "steam-dilemma %s (built %s)\n", version, buildTime)
	},
}

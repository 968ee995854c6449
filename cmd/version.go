package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildVersion is set with -ldflags "-X gqlfmt/cmd.buildVersion=v1.2.3".
var buildVersion = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gqlfmt version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gqlfmt %s\n", version())
	},
}

func version() string {
	if buildVersion == "(devel)" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
			return bi.Main.Version
		}
	}
	return buildVersion
}

package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"gqlfmt/config"
)

var forceInit bool

// initCmd: gqlfmt init
var initCmd = &cobra.Command{
	Use:       "init [yaml|yml|toml|json|xml]",
	Short:     "Create a gqlfmt configuration file with the defaults",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: config.Extensions,
	RunE: func(cmd *cobra.Command, args []string) error {
		ext := "yaml"
		if len(args) == 1 {
			ext = args[0]
		}
		if !slices.Contains(config.Extensions, ext) {
			return fmt.Errorf("unsupported extension %s (supported: %s)", ext, strings.Join(config.Extensions, "|"))
		}

		name := "gqlfmt." + ext
		if _, err := os.Stat(name); err == nil && !forceInit {
			return fmt.Errorf("%s already exists (use --force to overwrite)", name)
		}
		if err := config.New().SaveAs(ext); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", name)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing configuration file")
}

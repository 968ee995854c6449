package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gqlfmt/tokenizer"
)

// tokensCmd: gqlfmt tokens
var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a GraphQL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		for tok, err := range tokenizer.Tokenize(string(content)) {
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintln(out, tok)
		}
		return nil
	},
}

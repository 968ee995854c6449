package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"gqlfmt/format"
)

// checkCmd: gqlfmt check
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "List GraphQL files that are not formatted",
	Long:  "List GraphQL files that are not formatted. Exits with status 1 when there is at least one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		opts := processOptions(cmd, conf)
		defer saveCache(opts.Cache, conf.Cache.MaxAge())

		results, err := format.ProcessPaths(ctx, logger, inputPaths(conf, args), opts, nil)
		if err != nil {
			return err
		}

		var unformatted, failed int
		for _, res := range results {
			switch {
			case res.Err != nil:
				failed++
				fmt.Fprintln(cmd.ErrOrStderr(), res.Err)
			case res.Changed:
				unformatted++
				fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			}
		}

		switch {
		case failed > 0:
			return fmt.Errorf("%d file(s) could not be parsed", failed)
		case unformatted > 0:
			return fmt.Errorf("%d file(s) are not formatted", unformatted)
		}
		return nil
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gqlfmt/format"
)

// watchCmd: gqlfmt watch
var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Format GraphQL files whenever they are written",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig()
		if err != nil {
			return err
		}

		opts := processOptions(cmd, conf)
		opts.Write = true
		opts.Progress = nil
		defer saveCache(opts.Cache, conf.Cache.MaxAge())

		paths := inputPaths(conf, args)
		w, err := format.NewWatcher(logger, paths, opts)
		if err != nil {
			return err
		}
		logger.Info("watching for changes", zap.Strings("paths", paths))

		return w.Run(cmd.Context(), func(res format.Result) error {
			switch {
			case res.Err != nil:
				fmt.Fprintln(cmd.ErrOrStderr(), res.Err)
			case res.Changed:
				fmt.Fprintf(cmd.OutOrStdout(), "formatted %s\n", res.Path)
			}
			return nil
		})
	},
}

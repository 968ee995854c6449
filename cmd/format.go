package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gqlfmt/format"
)

var (
	showDiff bool
	toStdout bool
)

// formatCmd: gqlfmt format
var formatCmd = &cobra.Command{
	Use:   "format [paths...]",
	Short: "Format GraphQL files in place",
	RunE:  runFormat,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, formatCmd} {
		c.Flags().BoolVarP(&showDiff, "diff", "d", false, "print diffs instead of rewriting files")
		c.Flags().BoolVar(&toStdout, "stdout", false, "print formatted sources instead of rewriting files")
	}
	formatCmd.MarkFlagsMutuallyExclusive("diff", "stdout")
}

func runFormat(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	opts := processOptions(cmd, conf)
	opts.Write = !showDiff && !toStdout
	defer saveCache(opts.Cache, conf.Cache.MaxAge())

	results, err := format.ProcessPaths(ctx, logger, inputPaths(conf, args), opts, nil)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var failed, changed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintln(errOut, res.Err)
			continue
		}
		if res.Changed {
			changed++
		}
		switch {
		case toStdout:
			fmt.Fprint(out, res.Formatted)
		case showDiff && res.Changed:
			diff, err := format.Diff(res.Path, res.Original, res.Formatted)
			if err != nil {
				return fmt.Errorf("failed to diff %s: %w", res.Path, err)
			}
			fmt.Fprint(out, diff)
		case res.Changed:
			logger.Debug("formatted file", zap.String("path", res.Path))
		}
	}
	logger.Info("format finished", zap.Int("files", len(results)), zap.Int("changed", changed), zap.Int("failed", failed))

	if failed > 0 {
		return fmt.Errorf("%d file(s) could not be formatted", failed)
	}
	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gqlfmt/cache"
	"gqlfmt/config"
	"gqlfmt/format"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile  string
	timeout  time.Duration
	verbose  bool
	workers  int
	noCache  bool
	progress bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "gqlfmt [paths...]",
	Short:            "gqlfmt - a GraphQL formatter",
	Args:             cobra.ArbitraryArgs,
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	SilenceErrors:    true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		return err
	},
	// Format: gqlfmt [path1 path2 ...] => behaves like the format subcommand
	RunE: runFormat,
}

// Execute runs the command line until it completes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: gqlfmt.{yaml,yml,toml,json,xml} in the working directory)")
	flags.DurationVar(&timeout, "timeout", defaultTimeout, "time limit for formatting")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.IntVarP(&workers, "workers", "j", 0, "files formatted at once (default: number of CPUs)")
	flags.BoolVar(&noCache, "no-cache", false, "ignore the formatted-files cache")
	flags.BoolVar(&progress, "progress", false, "show a progress bar")

	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// loadConfig reads --config when given and the config file of the working
// directory otherwise. Without either the defaults are used.
func loadConfig() (config.Config, error) {
	if cfgFile != "" {
		conf, err := config.LoadFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		return conf, nil
	}

	conf, err := config.Load()
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no config file found, using defaults")
		return *config.New(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return conf, nil
}

// processOptions builds the format options shared by the file commands.
func processOptions(cmd *cobra.Command, conf config.Config) format.Options {
	opts := format.Options{
		Printer: conf.Format.PrinterOptions(),
		Exclude: conf.Input.Exclude,
		Workers: workers,
	}
	if progress {
		opts.Progress = cmd.ErrOrStderr()
	}
	if conf.Cache.Enabled && !noCache {
		c, err := cache.OpenDefault()
		if err != nil {
			logger.Warn("cache disabled", zap.Error(err))
		} else {
			opts.Cache = c
		}
	}
	return opts
}

// saveCache drops entries older than maxAge, unless it is zero, and writes
// the cache back.
func saveCache(c *cache.Cache, maxAge time.Duration) {
	if c == nil {
		return
	}
	if maxAge > 0 {
		c.Prune(maxAge)
	}
	logger.Debug("saving cache", zap.Int("entries", c.Len()))
	if err := c.Save(); err != nil {
		logger.Warn("failed to save cache", zap.Error(err))
	}
}

// inputPaths prefers the paths given on the command line over the configured
// ones.
func inputPaths(conf config.Config, args []string) []string {
	if len(args) > 0 {
		return args
	}
	return conf.Input.Paths
}

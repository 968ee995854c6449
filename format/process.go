package format

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gqlfmt/cache"
	"gqlfmt/fs"
	"gqlfmt/printer"
)

// Result is the outcome of formatting one file.
type Result struct {
	Path      string
	Original  string
	Formatted string
	// Changed is set when Formatted differs from Original.
	Changed bool
	// Cached is set when the cache knew the file to be formatted and it
	// was not parsed.
	Cached bool
	// Err holds read, syntax and write errors of the file.
	Err error
}

type Options struct {
	Printer printer.Options
	Exclude []string
	// Write rewrites changed files in place.
	Write bool
	// Cache is consulted before parsing and updated with formatted files.
	// Nil disables caching.
	Cache *cache.Cache
	// Progress receives a progress bar. Nil hides it.
	Progress io.Writer
	// Workers bounds the files processed at once. Defaults to the number
	// of CPUs.
	Workers int
}

// Func receives the result of every file. Calls are serialized. Returning
// an error stops the remaining work.
type Func func(Result) error

// ProcessPaths formats every GraphQL file below paths concurrently and
// returns the results sorted by path. Per-file failures are reported in
// Result.Err; only cancellation and errors of fn abort the run.
func ProcessPaths(ctx context.Context, logger *zap.Logger, paths []string, opts Options, fn Func) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	files, err := collect(paths, opts.Exclude)
	if err != nil {
		return nil, err
	}
	logger.Debug("collected files", zap.Strings("paths", paths), zap.Int("files", len(files)))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = newProgressBar(opts.Progress, len(files))
	}

	results := make([]Result, len(files))
	var mutex sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res := File(path, opts)
			results[i] = res
			if res.Err != nil {
				logger.Debug("failed to format file", zap.String("path", path), zap.Error(res.Err))
			}

			mutex.Lock()
			defer mutex.Unlock()
			if bar != nil {
				_ = bar.Add(1)
			}
			if fn != nil {
				return fn(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return results, nil
}

// File formats the file at path.
func File(path string, opts Options) Result {
	res := Result{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return res
	}
	res.Original = string(content)

	fingerprint := cache.Fingerprint(opts.Printer)
	if opts.Cache != nil && opts.Cache.Formatted(path, content, fingerprint) {
		res.Formatted, res.Cached = res.Original, true
		return res
	}

	formatted, err := Source(res.Original, opts.Printer)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", path, err)
		return res
	}
	res.Formatted = formatted
	res.Changed = formatted != res.Original

	if res.Changed && opts.Write {
		if err := writeFile(path, formatted); err != nil {
			res.Err = err
			return res
		}
	}
	if opts.Cache != nil && (!res.Changed || opts.Write) {
		opts.Cache.Remember(path, []byte(formatted), fingerprint)
	}
	return res
}

func writeFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func collect(paths []string, exclude []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		found, err := fs.CollectGraphQLFiles(path, exclude)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func newProgressBar(w io.Writer, n int) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("formatting"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

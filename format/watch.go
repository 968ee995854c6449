package format

import (
	"context"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"gqlfmt/fs"
)

// settle is how long a file has to stay quiet before it is formatted.
const settle = 100 * time.Millisecond

// Watcher formats GraphQL files as they are written.
type Watcher struct {
	logger  *zap.Logger
	roots   []string
	opts    Options
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching paths and every directory below them.
func NewWatcher(logger *zap.Logger, paths []string, opts Options) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{logger: logger, roots: paths, opts: opts, watcher: watcher}
	for _, path := range paths {
		if err := w.add(path); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}
	err = filepath.WalkDir(path, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.excluded(p) {
			return filepath.SkipDir
		}
		w.logger.Debug("watching directory", zap.String("path", p))
		return w.watcher.Add(p)
	})
	if err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	return nil
}

// Run formats written files until ctx is done and hands every result to fn.
// The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	defer w.watcher.Close()

	pending := make(map[string]struct{})
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				w.forget(event.Name)
				delete(pending, event.Name)
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := w.add(event.Name); err != nil {
					w.logger.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
				}
				continue
			}
			if !fs.IsGraphQLFile(event.Name) || w.excluded(event.Name) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(settle)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)

			for _, p := range paths {
				res := File(p, w.opts)
				if fn == nil {
					continue
				}
				if err := fn(res); err != nil {
					return err
				}
			}
		}
	}
}

// forget drops a removed or renamed file from the cache.
func (w *Watcher) forget(path string) {
	if w.opts.Cache == nil || !fs.IsGraphQLFile(path) {
		return
	}
	w.opts.Cache.Forget(path)
	w.logger.Debug("forgot removed file", zap.String("path", path))
}

// excluded matches the exclude globs against path relative to every
// watched root and against path itself.
func (w *Watcher) excluded(path string) bool {
	candidates := []string{filepath.ToSlash(path)}
	for _, root := range w.roots {
		if rel, err := filepath.Rel(root, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	for _, pattern := range w.opts.Exclude {
		for _, c := range candidates {
			if ok, _ := doublestar.Match(pattern, c); ok {
				return true
			}
		}
	}
	return false
}

package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectGraphQLFiles collects the GraphQL files below path.
// If the path is a file, it returns that file.
// If the path is a directory, it walks the directory and collects all .graphql and .gql files.
// Paths matching one of the exclude globs are skipped; globs are matched
// against the slash-separated path relative to the walked directory and
// against the path as given. The result is sorted.
func CollectGraphQLFiles(path string, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", path, err)
	}

	var files []string

	if stat.IsDir() {
		if err := filepath.WalkDir(path, func(p string, d iofs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(path, p)
			if err != nil {
				return err
			}
			if rel != "." && excluded(exclude, rel, p) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !IsGraphQLFile(p) {
				return nil
			}
			files = append(files, p)
			return nil
		}); err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", path, err)
		}
	} else {
		if !IsGraphQLFile(path) {
			return nil, fmt.Errorf("file %s is not a GraphQL file (must have .graphql or .gql extension)", path)
		}
		if !excluded(exclude, filepath.Base(path), path) {
			files = append(files, path)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no GraphQL files found in %s", path)
	}

	slices.Sort(files)
	return files, nil
}

// IsGraphQLFile checks if a file has a GraphQL extension
func IsGraphQLFile(path string) bool {
	return strings.HasSuffix(path, ".graphql") || strings.HasSuffix(path, ".gql")
}

func excluded(patterns []string, paths ...string) bool {
	for _, pattern := range patterns {
		for _, p := range paths {
			if ok, _ := doublestar.Match(pattern, filepath.ToSlash(p)); ok {
				return true
			}
		}
	}
	return false
}

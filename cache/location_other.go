//go:build !darwin && !windows

package cache

import (
	"errors"
	"os"
	"path/filepath"
)

// Location returns the per-user cache directory of gqlfmt.
func Location() (string, error) {
	if xdgCacheHome, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && xdgCacheHome != "" {
		return filepath.Join(xdgCacheHome, "gqlfmt"), nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "gqlfmt"), nil
	}
	return "", errors.New("could not determine cache location")
}

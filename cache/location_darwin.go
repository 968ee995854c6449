package cache

import (
	"errors"
	"os"
	"path/filepath"
)

func Location() (string, error) {
	if xdgCacheHome, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && xdgCacheHome != "" {
		return filepath.Join(xdgCacheHome, "gqlfmt"), nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "Library", "Caches", "gqlfmt"), nil
	}
	return "", errors.New("could not determine cache location")
}

package cache

import (
	"errors"
	"os"
	"path/filepath"
)

func Location() (string, error) {
	for _, env := range []string{"LOCALAPPDATA", "APPDATA"} {
		if dir, ok := os.LookupEnv(env); ok && dir != "" {
			return filepath.Join(dir, "gqlfmt", "cache"), nil
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "AppData", "Local", "gqlfmt", "cache"), nil
	}
	return "", errors.New("could not determine cache location")
}

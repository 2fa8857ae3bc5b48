package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDir is the subdirectory of the platform cache root shared with llama.cpp.
const AppDir = "llama.cpp"

// userCacheDir is swapped in tests.
var userCacheDir = os.UserCacheDir

// ResolveDir returns the cache directory, creating it with its parents.
// A non-empty override wins over the platform default.
func ResolveDir(override string) (string, error) {
	dir := override
	if dir == "" {
		root, err := userCacheDir()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrCacheDir, err)
		}
		dir = filepath.Join(root, AppDir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCacheDir, dir, err)
	}
	return dir, nil
}

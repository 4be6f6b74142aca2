package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by FindUpward when no directory holds the file.
var ErrNotFound = errors.New("file not found")

// FindUpward searches for a file called name starting from startDir and
// traversing up the directory tree.
//
// It returns the absolute path of the first match.
//
// Example:
//
//	path, err := FindUpward("/home/user/project/internal/config", "crypton.yaml")
//	if errors.Is(err, ErrNotFound) {
//	    // fall back to defaults
//	}
//	// path might be "/home/user/project/crypton.yaml"
func FindUpward(startDir, name string) (string, error) {
	absPath, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absPath

	for {
		candidate := filepath.Join(currentDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("%w: %s in any parent of %s", ErrNotFound, name, absPath)
		}

		currentDir = parentDir
	}
}

// Package projectroot locates the root of the enclosing git worktree.
package projectroot

import (
	"fmt"
	"os"
	"path/filepath"
)

// Find walks upward from start and returns the first directory containing a
// .git entry (directory or gitfile). It errors out when the filesystem root
// is reached without finding one.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no git repository found in %s or any parent directory", start)
		}
		dir = parent
	}
}

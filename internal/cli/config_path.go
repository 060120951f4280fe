package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mturkqa/internal/config"
)

// resolveInitTarget returns where init writes the credentials file and the
// project root that owns it. With no explicit path the file goes under the
// enclosing git repository, or the working directory outside one.
func resolveInitTarget(path string) (target, root string, err error) {
	if strings.TrimSpace(path) != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", "", fmt.Errorf("resolve config path: %w", err)
		}
		return abs, discoverGitRoot(filepath.Dir(abs)), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	root = discoverGitRoot(wd)
	base := root
	if base == "" {
		base = wd
	}
	return config.ConfigPath(base), root, nil
}

// discoverGitRoot walks up from startDir to the first directory holding
// .git, returning empty when there is none.
func discoverGitRoot(startDir string) string {
	dir := filepath.Clean(startDir)
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

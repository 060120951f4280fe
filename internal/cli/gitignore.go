package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mturkqa/internal/config"
)

// addGitignoreEntries appends the credentials folder and the .env file to
// repoRoot/.gitignore, skipping entries already listed. It reports whether
// the file changed.
func addGitignoreEntries(repoRoot, configDir string) (bool, error) {
	dirEntry, err := gitignoreEntry(repoRoot, configDir)
	if err != nil {
		return false, err
	}
	wanted := []string{dirEntry + "/", config.EnvFileName}

	gitignorePath := filepath.Join(repoRoot, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}
	present := map[string]bool{}
	for _, line := range strings.Split(string(existing), "\n") {
		present[strings.TrimSuffix(strings.TrimSpace(line), "/")] = true
	}

	var b strings.Builder
	b.Write(existing)
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		b.WriteString("\n")
	}
	added := false
	for _, entry := range wanted {
		if present[strings.TrimSuffix(entry, "/")] {
			continue
		}
		b.WriteString(entry + "\n")
		added = true
	}
	if !added {
		return false, nil
	}
	if err := os.WriteFile(gitignorePath, []byte(b.String()), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// gitignoreEntry returns dir relative to repoRoot in slash form.
func gitignoreEntry(repoRoot, dir string) (string, error) {
	rel, err := filepath.Rel(repoRoot, filepath.Clean(dir))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("config folder %q is not inside %q", dir, repoRoot)
	}
	return filepath.ToSlash(rel), nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// gitignoreEntry keeps per-user shell state (journals) out of version control.
const gitignoreEntry = ".dbgsh/"

// ScaffoldProject prepares dir for dbgsh: it writes dbgsh.toml and makes sure
// .gitignore excludes the .dbgsh/ state directory. Files that already exist
// are left untouched. Returns the list of created or modified paths.
func ScaffoldProject(dir string) ([]string, error) {
	var created []string

	tomlPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(tomlPath); os.IsNotExist(err) {
		if _, initErr := InitFile(dir); initErr != nil {
			return created, initErr
		}
		created = append(created, tomlPath)
	}

	gitignorePath := filepath.Join(dir, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	switch {
	case os.IsNotExist(err):
		if writeErr := atomicWriteFile(gitignorePath, []byte(gitignoreEntry+"\n"), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	case err != nil:
		return created, fmt.Errorf("scaffold: read %s: %w", gitignorePath, err)
	case !strings.Contains(string(existing), gitignoreEntry):
		content := string(existing)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content += "\n"
		}
		content += gitignoreEntry + "\n"
		if writeErr := atomicWriteFile(gitignorePath, []byte(content), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", gitignorePath, writeErr)
		}
		created = append(created, gitignorePath)
	}

	return created, nil
}

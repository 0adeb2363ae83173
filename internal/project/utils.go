package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindLatest finds the most recently modified project file in a directory.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read projects directory: %w", err)
	}

	var projects []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			projects = append(projects, filepath.Join(dir, entry.Name()))
		}
	}

	if len(projects) == 0 {
		return "", fmt.Errorf("no project files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.Slice(projects, func(i, j int) bool {
		infoI, _ := os.Stat(projects[i])
		infoJ, _ := os.Stat(projects[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return projects[0], nil
}

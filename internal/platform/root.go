package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned when no project root exists above the start directory.
var ErrRootNotFound = errors.New("project root not found")

// rootMarkers identify a project root, checked in order in each directory.
var rootMarkers = []string{".projtree", "project.yaml", "project.yml", "project.json", ".git"}

// FindRoot walks upwards from startDir and returns the first directory
// holding a project marker (system dir, default project file or .git).
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, marker := range rootMarkers {
			if hasFile(dir, marker) {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

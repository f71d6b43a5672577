package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileName is the settings file looked up by FindFile.
const DefaultFileName = "app-settings.json"

// FindFile looks upwards from startDir for a file called name.
// It returns the absolute path of the first match.
func FindFile(startDir, name string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found above %s", name, abs)
}

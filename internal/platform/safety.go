package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the directory under os.TempDir() used by the dev sandbox.
const DevDirName = "datastore-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	// "go run" builds into the temp dir.
	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	// "go test" binaries end in .test
	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolvePath determines the actual settings file path based on safety rules.
// When forceTemp is set, the file is re-rooted into a namespaced temporary
// directory, keeping only its base name, unless it already lives under the
// system temp directory.
func ResolvePath(userPath string, forceTemp bool) string {
	if !forceTemp {
		return userPath
	}

	// Paths already inside the temp dir (e.g. t.TempDir()) are trusted as is.
	cleanUserPath := filepath.Clean(userPath)
	rel, err := filepath.Rel(os.TempDir(), cleanUserPath)
	if err == nil && filepath.IsAbs(cleanUserPath) && !strings.HasPrefix(rel, "..") {
		return cleanUserPath
	}

	name := filepath.Base(cleanUserPath)
	if name == "." || name == string(os.PathSeparator) {
		name = "settings.json"
	}
	return filepath.Join(os.TempDir(), DevDirName, name)
}

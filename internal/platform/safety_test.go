package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePath(t *testing.T) {
	t.Parallel()

	tempRoot := os.TempDir()
	devBase := filepath.Join(tempRoot, DevDirName)
	insideTemp := filepath.Join(tempRoot, "already-safe", "prefs.json")

	tests := []struct {
		name      string
		userPath  string
		forceTemp bool
		expected  string
	}{
		{
			name:     "Normal Mode - Relative Path",
			userPath: "app-settings.json",
			expected: "app-settings.json",
		},
		{
			name:     "Normal Mode - Absolute Path",
			userPath: "/etc/app/settings.yaml",
			expected: "/etc/app/settings.yaml",
		},
		{
			name:      "Dev Mode - Re-rooted",
			userPath:  "/etc/app/settings.yaml",
			forceTemp: true,
			expected:  filepath.Join(devBase, "settings.yaml"),
		},
		{
			name:      "Dev Mode - Relative Traversal",
			userPath:  "../../prefs.toml",
			forceTemp: true,
			expected:  filepath.Join(devBase, "prefs.toml"),
		},
		{
			name:      "Dev Mode - Already In Temp",
			userPath:  insideTemp,
			forceTemp: true,
			expected:  insideTemp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePath(tt.userPath, tt.forceTemp)
			if got != tt.expected {
				t.Errorf("ResolvePath(%q, %v) = %q, want %q", tt.userPath, tt.forceTemp, got, tt.expected)
			}
		})
	}
}

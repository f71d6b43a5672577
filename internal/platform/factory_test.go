package platform

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/datastore/pkg/core"
	"github.com/aretw0/datastore/pkg/settings"
)

func TestOpenSettings_FormatByExtension(t *testing.T) {
	for _, name := range []string{"app-settings.json", "app-settings.yaml", "app-settings.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			svc, err := OpenSettings(path)
			require.NoError(t, err)

			_, err = svc.SetLanguage(context.Background(), settings.Spanish)
			require.NoError(t, err)
			require.NoError(t, svc.Close())

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(raw), "SPANISH")

			reopened, err := OpenSettings(path)
			require.NoError(t, err)
			defer reopened.Close()
			assert.Equal(t, settings.Spanish, reopened.Current().Language)
		})
	}
}

func TestOpenSettings_WithFormatOverridesExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.conf")

	svc, err := OpenSettings(path, WithFormat(".yaml"))
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.SetLanguage(context.Background(), settings.German)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "knownLocations"), "expected yaml keys, got %q", raw)
}

func TestOpenSettings_WithFormatWithoutDot(t *testing.T) {
	for _, format := range []string{"yaml", "YAML", ".yml"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.conf")

			svc, err := OpenSettings(path, WithFormat(format))
			require.NoError(t, err)
			defer svc.Close()

			_, err = svc.SetLanguage(context.Background(), settings.German)
			require.NoError(t, err)

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(raw), "knownLocations"), "expected yaml keys, got %q", raw)
		})
	}

	_, err := OpenSettings(filepath.Join(t.TempDir(), "settings.conf"), WithFormat("ini"))
	require.Error(t, err)
}

func TestOpenSettings_UnknownExtension(t *testing.T) {
	_, err := OpenSettings(filepath.Join(t.TempDir(), "settings.ini"))
	require.Error(t, err)
}

func TestOpenSettings_DirectoryPath(t *testing.T) {
	_, err := OpenSettings(t.TempDir())
	require.Error(t, err)
}

func TestOpenSettings_ReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app-settings.json")

	svc, err := OpenSettings(path, WithReadOnly(true))
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.SetLanguage(context.Background(), settings.German)
	require.ErrorIs(t, err, core.ErrReadOnly)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "read-only store must not create the file")
}

func TestOpenSettings_FileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app-settings.json")

	svc, err := OpenSettings(path, WithFileMode(0600))
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.AddLocation(context.Background(), settings.Location{Lat: 1, Lng: 2})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

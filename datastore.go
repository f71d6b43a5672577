package datastore

import (
	"log/slog"
	"os"

	"github.com/aretw0/datastore/internal/platform"
	"github.com/aretw0/datastore/pkg/core"
	"github.com/aretw0/datastore/pkg/settings"
	"github.com/aretw0/datastore/pkg/store"
)

// --- Types ---

// Store is a public alias for the generic single-document store.
type Store[T any] = store.Store[T]

// Settings is a public alias for the settings document.
type Settings = settings.Settings

// SettingsService is a public alias for the settings update operations.
type SettingsService = settings.Service

// --- Errors ---

var (
	ErrMalformedData = core.ErrMalformedData
	ErrPersistence   = core.ErrPersistence
	ErrValidation    = core.ErrValidation
	ErrReadOnly      = core.ErrReadOnly
	ErrClosed        = core.ErrClosed
)

// --- Configuration ---

// Option defines a functional option for configuring a store.
type Option = platform.Option

// WithLogger sets the logger for the store and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage adapter.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithFormat forces the serialization format by extension.
func WithFormat(ext string) Option {
	return platform.WithFormat(ext)
}

// WithFileMode sets the permissions of the settings file.
func WithFileMode(mode os.FileMode) Option {
	return platform.WithFileMode(mode)
}

// WithReadOnly rejects every update with ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithDevSafety controls the dev sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatch reloads the document when another process changes the file.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// WithWatcherErrorHandler receives errors raised while watching.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open opens the document of type T stored at path. defaults provides the
// value used while nothing is stored and the fill-in for missing fields.
func Open[T any](path string, defaults func() T, opts ...Option) (*store.Store[T], error) {
	return platform.Open(path, defaults, opts...)
}

// OpenSettings opens the settings document stored at path.
func OpenSettings(path string, opts ...Option) (*settings.Service, error) {
	return platform.OpenSettings(path, opts...)
}

// --- Safety & Utils ---

// DefaultFileName is the settings file name looked up by FindFile.
const DefaultFileName = platform.DefaultFileName

// ResolvePath determines the actual settings path based on safety rules.
func ResolvePath(userPath string, forceTemp bool) string {
	return platform.ResolvePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindFile looks upwards from startDir for a file called name.
func FindFile(startDir, name string) (string, error) {
	return platform.FindFile(startDir, name)
}

package platform

import (
	"log/slog"
	"os"

	"github.com/aretw0/datastore/pkg/core"
)

// options holds the internal configuration for opening a store.
type options struct {
	storage core.Storage
	logger  *slog.Logger
	config  map[string]interface{}
}

// Option defines a functional option for configuring a store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		storage: nil,
		logger:  nil,
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the store and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage allows injecting a custom storage adapter (e.g. mock, remote blob).
// If provided, the filesystem adapter is skipped and the path argument is
// only used to pick the format.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithFormat forces the serialization format by extension (".json", ".yaml",
// ".toml"); the leading dot is optional. By default the format follows the
// file extension.
func WithFormat(ext string) Option {
	return func(o *options) {
		o.config["format"] = ext
	}
}

// WithFileMode sets the permissions of the settings file. Defaults to 0644.
func WithFileMode(mode os.FileMode) Option {
	return func(o *options) {
		o.config["file_mode"] = mode
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Update returns ErrReadOnly.
// 2. Nothing is ever written to storage.
// 3. Dev Safety (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithForceTemp forces the settings file into a temporary directory
// (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithDevSafety controls the "Sandbox" safety mechanism when running via `go run`.
// By default (true), the settings file is re-rooted into a temporary directory
// to prevent clobbering real settings during development.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithWatch reloads and republishes the document when the file is changed
// by another process.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.config["watch"] = enabled
	}
}

// WithWatcherErrorHandler registers a callback for errors raised while
// watching (e.g. an external edit that does not parse). Such errors are
// otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

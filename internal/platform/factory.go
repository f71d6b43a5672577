package platform

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/datastore/pkg/adapters/fs"
	"github.com/aretw0/datastore/pkg/core"
	"github.com/aretw0/datastore/pkg/settings"
	"github.com/aretw0/datastore/pkg/store"
)

// Open opens (or prepares to create) the document stored at path.
//
//	st, err := datastore.Open("./prefs.yaml", DefaultPrefs, datastore.WithLogger(logger))
//
// The serialization format follows the extension of path unless WithFormat is set.
func Open[T any](path string, defaults func() T, opts ...Option) (*store.Store[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	readOnly, _ := o.config["read_only"].(bool)
	watch, _ := o.config["watch"].(bool)

	storage := o.storage
	if storage == nil {
		var err error
		storage, err = initFS(path, o)
		if err != nil {
			return nil, err
		}
	}

	formatHint := storage.Location()
	if format, ok := o.config["format"].(string); ok && format != "" {
		if !strings.HasPrefix(format, ".") {
			format = "." + format
		}
		formatHint = "document" + format
	}
	codec, err := fs.SerializerFor(formatHint, defaults)
	if err != nil {
		return nil, err
	}

	return store.Open(context.Background(), storage, codec, store.Config{
		Logger:       o.logger,
		ReadOnly:     readOnly,
		Watch:        watch,
		ErrorHandler: errorHandler,
	})
}

// OpenSettings opens the settings document at path and wraps it in a settings.Service.
func OpenSettings(path string, opts ...Option) (*settings.Service, error) {
	st, err := Open(path, settings.Default, opts...)
	if err != nil {
		return nil, err
	}
	return settings.NewService(st), nil
}

// initFS handles the path resolution and configuration of the filesystem adapter.
func initFS(path string, o *options) (core.Storage, error) {
	if path == "" {
		return nil, fmt.Errorf("settings path is required")
	}

	tempDir, _ := o.config["temp_dir"].(bool)
	isReadOnly, _ := o.config["read_only"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	fileMode, _ := o.config["file_mode"].(os.FileMode)

	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Bypass Safety if:
	// 1. ReadOnly is active (inherently safe)
	// 2. User explicitly disabled DevSafety
	bypassSafety := isReadOnly || !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolvePath(path, useTemp)

	if IsDevRun() {
		if bypassSafety {
			o.logger.Debug("dev sandbox bypassed", "path", resolvedPath, "read_only", isReadOnly)
		} else {
			o.logger.Debug("dev sandbox enabled", "path", resolvedPath)
		}
	}

	if info, err := os.Stat(resolvedPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("settings path is a directory: %s", resolvedPath)
	}

	abs, err := filepath.Abs(resolvedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", resolvedPath, err)
	}

	return fs.NewStorage(fs.Config{
		Path:         abs,
		FileMode:     fileMode,
		ReadOnly:     isReadOnly,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	}), nil
}

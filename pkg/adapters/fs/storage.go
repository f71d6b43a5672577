package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/datastore/pkg/core"
)

// DefaultFileMode is used when Config.FileMode is zero.
const DefaultFileMode os.FileMode = 0644

// Config holds the configuration for the filesystem storage.
type Config struct {
	Path     string
	FileMode os.FileMode
	ReadOnly bool
	Logger   *slog.Logger

	// ErrorHandler receives errors raised by the watch loop.
	ErrorHandler func(error)
}

// Storage implements core.Storage on a single file.
type Storage struct {
	Path   string
	config Config

	mu            sync.RWMutex
	lastWrite     *time.Time
	writes        int
	watcherActive bool
}

// NewStorage creates a new file-backed storage. Nothing touches the disk
// until Load or Save is called.
func NewStorage(config Config) *Storage {
	if config.FileMode == 0 {
		config.FileMode = DefaultFileMode
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Storage{
		Path:   config.Path,
		config: config,
	}
}

// Location implements core.Storage.
func (s *Storage) Location() string {
	return s.Path
}

// Load reads the file. A missing file is reported as found=false.
func (s *Storage) Load(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	return data, true, nil
}

// Save writes data atomically, creating parent directories as needed.
func (s *Storage) Save(ctx context.Context, data []byte) error {
	if s.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := writeFileAtomic(s.Path, data, s.config.FileMode); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.recordWrite()
	s.config.Logger.Debug("document written", "path", s.Path, "bytes", len(data))
	return nil
}

func (s *Storage) recordWrite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.lastWrite = &now
	s.writes++
}

var _ core.Storage = (*Storage)(nil)

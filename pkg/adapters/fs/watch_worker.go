package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/datastore/pkg/core"
)

// DefaultDebounce is the quiet period before a burst of filesystem events
// is reported as one change.
const DefaultDebounce = 50 * time.Millisecond

// Watch reports external changes to the storage file until ctx is cancelled.
// The returned channel is closed when the watch loop exits.
//
// The parent directory is watched (atomic renames replace the inode, which
// would silently end a watch on the file itself) and events are filtered to
// the file name.
func (s *Storage) Watch(ctx context.Context) (<-chan core.Event, error) {
	events := make(chan core.Event, 16)
	w := newWatchWorker(s, escapeGlob(filepath.Base(s.Path)), events)
	if err := w.start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	storage   *Storage
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	logger    *slog.Logger
}

func newWatchWorker(s *Storage, pattern string, events chan core.Event) *watchWorker {
	return &watchWorker{
		storage: s,
		pattern: pattern,
		events:  events,
		logger:  s.config.Logger.With("component", "fs-watcher"),
	}
}

func (w *watchWorker) start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !doublestar.ValidatePattern(w.pattern) {
		return fmt.Errorf("invalid watch pattern %q", w.pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(w.storage.Path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(DefaultDebounce)
	w.storage.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.reportError(fmt.Errorf("watcher panic: %w", err))
	}))
	return nil
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("watcher panic: %v", recovered)
			if w.logger.Enabled(ctx, slog.LevelDebug) {
				w.logger.Error("watcher panic", "error", panicErr, "stack", string(debug.Stack()))
			} else {
				w.logger.Error("watcher panic", "error", panicErr)
			}
			err = panicErr
		}
	}()
	defer close(w.events)
	defer w.storage.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// In-flight debounce timers may still send; wait before closing events.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("fsnotify error", "error", wErr)
			w.reportError(wErr)
		}
	}
}

// processFilesystemEvent filters, maps and debounces one fsnotify event.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) bool {
	w.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if isTempFile(event.Name) {
		return false
	}
	if match, err := doublestar.Match(w.pattern, filepath.Base(event.Name)); err != nil || !match {
		return false
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	w.debouncer.add(core.Event{
		Type:      eType,
		Location:  w.storage.Path,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		// events may already be closed if shutdown outlived the wait.
		defer func() { _ = recover() }()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
	return true
}

func (w *watchWorker) reportError(err error) {
	if w.storage.config.ErrorHandler != nil {
		w.storage.config.ErrorHandler(err)
	}
}

// escapeGlob quotes doublestar metacharacters so name matches only itself.
func escapeGlob(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '*', '?', '[', ']', '{', '}', '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}

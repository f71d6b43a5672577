package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/datastore/pkg/core"
)

// Config holds the configuration for a Store.
type Config struct {
	Logger   *slog.Logger
	ReadOnly bool

	// Watch reloads the document when the storage reports an external change.
	// The storage must implement core.Watchable.
	Watch bool

	// ErrorHandler receives errors that have no caller to return to
	// (failed reloads triggered by the watcher).
	ErrorHandler func(error)
}

// Store holds exactly one document of type T.
//
// Reads (Current, Observe) never wait for updates. Updates are applied in
// the order they are accepted, one at a time, and a value becomes visible
// only after it has been persisted.
type Store[T any] struct {
	storage core.Storage
	codec   core.Codec[T]
	config  Config
	logger  *slog.Logger
	hub     *broadcaster[T]

	requests chan request[T]
	done     chan struct{}
	cancel   context.CancelFunc
	closed   atomic.Bool
	closeMu  sync.Mutex

	// persisted is owned by the loop goroutine after Open returns.
	persisted []byte

	revision atomic.Uint64
	failures atomic.Uint64
	watching atomic.Bool
	openedAt time.Time
}

type request[T any] struct {
	transform core.Transform[T]
	reload    bool
	reply     chan result[T]
}

type result[T any] struct {
	value   T
	changed bool
	err     error
}

// Open loads the document from storage, or starts from codec.Default() when
// nothing is stored yet. Nothing is written until the first Update.
// A stored representation that cannot be decoded fails with
// core.ErrMalformedData; it is never replaced silently.
func Open[T any](ctx context.Context, storage core.Storage, codec core.Codec[T], config Config) (*Store[T], error) {
	if storage == nil {
		return nil, errors.New("store: storage is required")
	}
	if codec == nil {
		return nil, errors.New("store: codec is required")
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger := config.Logger.With("component", "store", "location", storage.Location())

	data, found, err := storage.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", storage.Location(), err)
	}

	initial := codec.Default()
	if found {
		initial, err = codec.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", storage.Location(), err)
		}
		logger.Debug("document loaded", "bytes", len(data))
	} else {
		logger.Debug("no stored document, using default")
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s := &Store[T]{
		storage:   storage,
		codec:     codec,
		config:    config,
		logger:    logger,
		hub:       newBroadcaster(initial, logger),
		requests:  make(chan request[T]),
		done:      make(chan struct{}),
		cancel:    cancel,
		persisted: data,
		openedAt:  time.Now(),
	}

	go s.loop(runCtx)

	if config.Watch {
		if err := s.watch(runCtx); err != nil {
			s.Close()
			return nil, err
		}
	}

	return s, nil
}

// Current returns the latest committed value without waiting.
func (s *Store[T]) Current() T {
	return s.hub.latest()
}

// Observe returns a stream that first yields the current value and then every
// committed value in commit order. Each call gets an independent stream; a
// slow reader never delays updates or other readers. The channel is closed
// when ctx is done or the store is closed.
func (s *Store[T]) Observe(ctx context.Context) <-chan T {
	return s.hub.subscribe(ctx)
}

// Update applies transform to the current value, persists the result and
// publishes it.
//
// ctx bounds only the wait for the update to be accepted; once accepted the
// update runs to completion. On any failure the current value and the stored
// representation are unchanged:
//   - an error (or panic) from transform is returned as is,
//   - an invalid candidate fails with core.ErrValidation,
//   - a failed write fails with core.ErrPersistence.
func (s *Store[T]) Update(ctx context.Context, transform core.Transform[T]) (T, error) {
	var zero T
	if transform == nil {
		return zero, errors.New("store: transform is required")
	}
	if s.config.ReadOnly {
		return zero, core.ErrReadOnly
	}
	res, err := s.submit(ctx, request[T]{transform: transform})
	if err != nil {
		return zero, err
	}
	return res.value, res.err
}

// Reload re-reads the stored representation and publishes it when it differs
// from the last persisted one. It reports whether a new value was published.
// A missing representation leaves the current value in place.
func (s *Store[T]) Reload(ctx context.Context) (bool, error) {
	res, err := s.submit(ctx, request[T]{reload: true})
	if err != nil {
		return false, err
	}
	return res.changed, res.err
}

// Revision counts the values committed since Open.
func (s *Store[T]) Revision() uint64 {
	return s.revision.Load()
}

// Location returns the storage location of the document.
func (s *Store[T]) Location() string {
	return s.storage.Location()
}

// Close stops accepting updates and ends all observer streams. An update
// already accepted completes first. Current keeps returning the last value.
func (s *Store[T]) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	if s.closed.Swap(true) {
		return nil
	}
	s.cancel()
	<-s.done
	s.hub.close()
	s.logger.Debug("store closed", "revision", s.Revision())
	return nil
}

func (s *Store[T]) submit(ctx context.Context, req request[T]) (result[T], error) {
	if s.closed.Load() {
		return result[T]{}, core.ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return result[T]{}, err
	}

	req.reply = make(chan result[T], 1)
	select {
	case s.requests <- req:
	case <-ctx.Done():
		return result[T]{}, ctx.Err()
	case <-s.done:
		return result[T]{}, core.ErrClosed
	}
	return <-req.reply, nil
}

// loop is the only goroutine that writes to storage or commits values.
func (s *Store[T]) loop(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.requests:
			if req.reload {
				req.reply <- s.applyReload()
			} else {
				req.reply <- s.applyUpdate(req.transform)
			}
		}
	}
}

func (s *Store[T]) applyUpdate(transform core.Transform[T]) result[T] {
	prev := s.Current()

	next, err := s.runTransform(transform, prev)
	if err != nil {
		return s.fail("transform failed", err)
	}

	if err := validate(next); err != nil {
		if !errors.Is(err, core.ErrValidation) {
			err = fmt.Errorf("%w: %w", core.ErrValidation, err)
		}
		return s.fail("candidate rejected", err)
	}

	data, err := s.codec.Encode(next)
	if err != nil {
		return s.fail("encode failed", fmt.Errorf("%w: %w", core.ErrPersistence, err))
	}

	// Not cancellable: once the write starts it runs to completion.
	if err := s.storage.Save(context.Background(), data); err != nil {
		return s.fail("write failed", fmt.Errorf("%w: %w", core.ErrPersistence, err))
	}

	s.persisted = data
	s.commit(next)
	s.logger.Debug("update committed", "revision", s.Revision(), "bytes", len(data))
	return result[T]{value: next, changed: true}
}

func (s *Store[T]) applyReload() result[T] {
	data, found, err := s.storage.Load(context.Background())
	if err != nil {
		return s.fail("reload failed", err)
	}
	if !found {
		s.logger.Debug("stored document missing on reload, keeping current value")
		return result[T]{value: s.Current()}
	}
	if bytes.Equal(data, s.persisted) {
		return result[T]{value: s.Current()}
	}

	next, err := s.codec.Decode(data)
	if err != nil {
		return s.fail("reload failed", err)
	}

	// Formatting-only edits decode to the value we already hold.
	if encoded, err := s.codec.Encode(next); err == nil && bytes.Equal(encoded, s.persisted) {
		s.persisted = data
		return result[T]{value: s.Current()}
	}

	s.persisted = data
	s.commit(next)
	s.logger.Info("external change loaded", "revision", s.Revision())
	return result[T]{value: next, changed: true}
}

func (s *Store[T]) runTransform(transform core.Transform[T], current T) (next T, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("transform panic: %v", recovered)
			if s.logger.Enabled(context.Background(), slog.LevelDebug) {
				s.logger.Debug("transform panic", "error", err, "stack", string(debug.Stack()))
			}
		}
	}()
	return transform(current)
}

func (s *Store[T]) commit(v T) {
	s.revision.Add(1)
	s.hub.publish(v)
}

func (s *Store[T]) fail(msg string, err error) result[T] {
	s.failures.Add(1)
	s.logger.Warn(msg, "error", err)
	return result[T]{err: err}
}

func validate(v any) error {
	if val, ok := v.(core.Validator); ok {
		return val.Validate()
	}
	return nil
}

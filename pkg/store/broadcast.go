package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// broadcaster keeps the latest committed value and fans every new value out
// to subscribers. Publishing only appends to per-subscriber queues, so it
// never waits on a reader.
type broadcaster[T any] struct {
	mu      sync.Mutex
	current atomic.Pointer[T]
	subs    map[string]*subscriber[T]
	closed  bool
	logger  *slog.Logger
}

func newBroadcaster[T any](initial T, logger *slog.Logger) *broadcaster[T] {
	b := &broadcaster[T]{
		subs:   make(map[string]*subscriber[T]),
		logger: logger,
	}
	b.current.Store(&initial)
	return b
}

func (b *broadcaster[T]) latest() T {
	return *b.current.Load()
}

// publish must be called by a single goroutine at a time (the store loop).
func (b *broadcaster[T]) publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current.Store(&v)
	for _, sub := range b.subs {
		sub.enqueue(v)
	}
}

func (b *broadcaster[T]) subscribe(ctx context.Context) <-chan T {
	sub := newSubscriber[T](uuid.New().String())

	// Registration and the initial value are taken under the same lock as
	// publish, so a subscriber sees every value after its first exactly once.
	b.mu.Lock()
	sub.enqueue(*b.current.Load())
	if b.closed {
		sub.finish()
	} else {
		b.subs[sub.id] = sub
	}
	count := len(b.subs)
	b.mu.Unlock()

	b.logger.Debug("subscriber added", "sub_id", sub.id, "subscribers", count)

	go func() {
		sub.pump(ctx)
		b.unsubscribe(sub.id)
	}()
	return sub.out
}

func (b *broadcaster[T]) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[id]; !ok {
		return
	}
	delete(b.subs, id)
	b.logger.Debug("subscriber removed", "sub_id", id)
}

func (b *broadcaster[T]) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// close finishes every subscriber after its queued values are delivered.
func (b *broadcaster[T]) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, sub := range b.subs {
		sub.finish()
		delete(b.subs, id)
	}
}

// subscriber buffers values without bound and feeds them to out in order.
type subscriber[T any] struct {
	id  string
	out chan T

	mu       sync.Mutex
	queue    []T
	finished bool
	wake     chan struct{}
}

func newSubscriber[T any](id string) *subscriber[T] {
	return &subscriber[T]{
		id:   id,
		out:  make(chan T),
		wake: make(chan struct{}, 1),
	}
}

func (s *subscriber[T]) enqueue(v T) {
	s.mu.Lock()
	s.queue = append(s.queue, v)
	s.mu.Unlock()
	s.signal()
}

func (s *subscriber[T]) finish() {
	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()
	s.signal()
}

func (s *subscriber[T]) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber[T]) pump(ctx context.Context) {
	defer close(s.out)
	for {
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		finished := s.finished
		s.mu.Unlock()

		for _, v := range batch {
			select {
			case s.out <- v:
			case <-ctx.Done():
				return
			}
		}
		if len(batch) > 0 {
			continue
		}
		if finished {
			return
		}

		select {
		case <-s.wake:
		case <-ctx.Done():
			return
		}
	}
}

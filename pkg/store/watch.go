package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/datastore/pkg/core"
)

// watch follows external changes reported by the storage and reloads.
func (s *Store[T]) watch(ctx context.Context) error {
	w, ok := s.storage.(core.Watchable)
	if !ok {
		return errors.New("store: storage does not support watching")
	}

	events, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.storage.Location(), err)
	}

	s.watching.Store(true)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.watching.Store(false)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				s.handleEvent(ctx, e)
			}
		}
	}, lifecycle.WithErrorHandler(s.reportError))
	return nil
}

func (s *Store[T]) handleEvent(ctx context.Context, e core.Event) {
	s.logger.Debug("external change", "event", e.String())
	if e.Type == core.EventDelete {
		return
	}

	if _, err := s.Reload(ctx); err != nil {
		if errors.Is(err, core.ErrClosed) || errors.Is(err, context.Canceled) {
			return
		}
		s.reportError(fmt.Errorf("reload after %s: %w", e.Type, err))
	}
}

func (s *Store[T]) reportError(err error) {
	s.logger.Error("watch error", "error", err)
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	}
}

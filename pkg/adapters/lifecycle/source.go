// Package lifecycle exposes storage change events as a lifecycle.Source.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/datastore/pkg/core"
)

type changeSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps the events of a core.Watchable storage. The returned
// source closes its channel when events is closed or the Start context ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &changeSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *changeSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *changeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

package store

import (
	"time"

	"github.com/aretw0/introspection"
)

// State is the observable state of a Store.
type State struct {
	Location    string    `json:"location"`
	StorageType string    `json:"storage_type"`
	Revision    uint64    `json:"revision"`
	Failures    uint64    `json:"failures"`
	Subscribers int       `json:"subscribers"`
	ReadOnly    bool      `json:"read_only"`
	Watching    bool      `json:"watching"`
	Closed      bool      `json:"closed"`
	OpenedAt    time.Time `json:"opened_at"`
}

// State implements introspection.Introspectable.
func (s *Store[T]) State() any {
	storageType := "storage"
	if comp, ok := s.storage.(introspection.Component); ok {
		storageType = comp.ComponentType()
	}

	return State{
		Location:    s.storage.Location(),
		StorageType: storageType,
		Revision:    s.revision.Load(),
		Failures:    s.failures.Load(),
		Subscribers: s.hub.count(),
		ReadOnly:    s.config.ReadOnly,
		Watching:    s.watching.Load(),
		Closed:      s.closed.Load(),
		OpenedAt:    s.openedAt,
	}
}

// ComponentType implements introspection.Component.
func (s *Store[T]) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store[struct{}])(nil)
var _ introspection.Component = (*Store[struct{}])(nil)

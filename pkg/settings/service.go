package settings

import (
	"context"
	"fmt"

	"github.com/aretw0/datastore/pkg/core"
	"github.com/aretw0/datastore/pkg/store"
)

// Service exposes the named update operations on a settings store.
// Every operation validates its input before touching the store and goes
// through store.Update, so it is persisted and published atomically.
type Service struct {
	store *store.Store[Settings]
}

// NewService wraps an open settings store.
func NewService(st *store.Store[Settings]) *Service {
	return &Service{store: st}
}

// Store returns the underlying store.
func (s *Service) Store() *store.Store[Settings] {
	return s.store
}

// Current returns the latest committed settings.
func (s *Service) Current() Settings {
	return s.store.Current()
}

// Observe streams the current settings and then every committed change.
func (s *Service) Observe(ctx context.Context) <-chan Settings {
	return s.store.Observe(ctx)
}

// Update applies an arbitrary transformation.
func (s *Service) Update(ctx context.Context, fn core.Transform[Settings]) (Settings, error) {
	return s.store.Update(ctx, fn)
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// SetLanguage replaces the language.
func (s *Service) SetLanguage(ctx context.Context, l Language) (Settings, error) {
	if !l.Valid() {
		return Settings{}, fmt.Errorf("%w: unknown language %s", core.ErrValidation, l)
	}
	return s.store.Update(ctx, func(cur Settings) (Settings, error) {
		return cur.WithLanguage(l), nil
	})
}

// AddLocation appends loc to the primary locations.
func (s *Service) AddLocation(ctx context.Context, loc Location) (Settings, error) {
	return s.updateLocations(ctx, loc, primary, Locations.Append)
}

// RemoveLocation removes the first primary location equal to loc.
// Removing an absent location succeeds and still persists.
func (s *Service) RemoveLocation(ctx context.Context, loc Location) (Settings, error) {
	return s.updateLocations(ctx, loc, primary, Locations.Remove)
}

// AddLocation2 appends loc to the secondary locations.
func (s *Service) AddLocation2(ctx context.Context, loc Location) (Settings, error) {
	return s.updateLocations(ctx, loc, secondary, Locations.Append)
}

// RemoveLocation2 removes the first secondary location equal to loc.
func (s *Service) RemoveLocation2(ctx context.Context, loc Location) (Settings, error) {
	return s.updateLocations(ctx, loc, secondary, Locations.Remove)
}

type collection int

const (
	primary collection = iota
	secondary
)

func (s *Service) updateLocations(ctx context.Context, loc Location, which collection, op func(Locations, Location) Locations) (Settings, error) {
	if err := loc.Validate(); err != nil {
		return Settings{}, err
	}
	return s.store.Update(ctx, func(cur Settings) (Settings, error) {
		if which == secondary {
			return cur.WithLocations2(op(cur.Locations2, loc)), nil
		}
		return cur.WithLocations(op(cur.Locations, loc)), nil
	})
}

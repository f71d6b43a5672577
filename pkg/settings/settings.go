package settings

import (
	"errors"
	"fmt"

	"github.com/aretw0/datastore/pkg/core"
)

// Settings is the persisted application settings document.
//
// Locations and Locations2 have the same shape. They are kept apart because
// collaborators present them as two independent lists.
type Settings struct {
	Language   Language  `json:"language"`
	Locations  Locations `json:"knownLocations"`
	Locations2 Locations `json:"knownLocations2"`
}

// Default returns the canonical settings: English and no locations.
func Default() Settings {
	return Settings{Language: English}
}

// WithLanguage returns a copy of s with the language replaced.
func (s Settings) WithLanguage(l Language) Settings {
	s.Language = l
	return s
}

// WithLocations returns a copy of s with the primary locations replaced.
func (s Settings) WithLocations(l Locations) Settings {
	s.Locations = l
	return s
}

// WithLocations2 returns a copy of s with the secondary locations replaced.
func (s Settings) WithLocations2(l Locations) Settings {
	s.Locations2 = l
	return s
}

// Equal reports whether s and other hold the same values.
func (s Settings) Equal(other Settings) bool {
	return s.Language == other.Language &&
		s.Locations.Equal(other.Locations) &&
		s.Locations2.Equal(other.Locations2)
}

// Validate implements core.Validator.
func (s Settings) Validate() error {
	var errs []error
	if !s.Language.Valid() {
		errs = append(errs, fmt.Errorf("%w: invalid language %d", core.ErrValidation, int(s.Language)))
	}
	for loc := range s.Locations.All() {
		if err := loc.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("knownLocations: %w", err))
		}
	}
	for loc := range s.Locations2.All() {
		if err := loc.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("knownLocations2: %w", err))
		}
	}
	return errors.Join(errs...)
}

var _ core.Validator = Settings{}

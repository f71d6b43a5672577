package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/aretw0/datastore/pkg/core"
)

// Location is a geographic coordinate in degrees. Locations compare by value.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewLocation returns a validated location.
func NewLocation(lat, lng float64) (Location, error) {
	l := Location{Lat: lat, Lng: lng}
	if err := l.Validate(); err != nil {
		return Location{}, err
	}
	return l, nil
}

// Validate checks that the coordinates are finite and in range.
func (l Location) Validate() error {
	if math.IsNaN(l.Lat) || l.Lat < -90 || l.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", core.ErrValidation, l.Lat)
	}
	if math.IsNaN(l.Lng) || l.Lng < -180 || l.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", core.ErrValidation, l.Lng)
	}
	return nil
}

func (l Location) String() string {
	return "lat=" + strconv.FormatFloat(l.Lat, 'g', -1, 64) +
		", lng=" + strconv.FormatFloat(l.Lng, 'g', -1, 64)
}

var (
	errNullLocation    = errors.New("location must not be null")
	errPartialLocation = errors.New("location requires both lat and lng")
)

// UnmarshalJSON requires both coordinates and rejects null elements.
func (l *Location) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errNullLocation
	}

	var raw struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Lat == nil || raw.Lng == nil {
		return errPartialLocation
	}

	*l = Location{Lat: *raw.Lat, Lng: *raw.Lng}
	return nil
}

package settings

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/datastore/pkg/core"
)

func TestSettings_With(t *testing.T) {
	base := Default()
	locs := NewLocations(berlin)

	german := base.WithLanguage(German)
	withLocs := german.WithLocations(locs)
	withLocs2 := withLocs.WithLocations2(NewLocations(madrid))

	assert.Equal(t, English, base.Language, "receiver must be unchanged")
	assert.Equal(t, German, withLocs2.Language)
	assert.True(t, withLocs2.Locations.Equal(locs))
	assert.True(t, withLocs2.Locations2.Equal(NewLocations(madrid)))
	assert.Equal(t, 0, withLocs.Locations2.Len())
}

func TestSettings_Equal(t *testing.T) {
	a := Default().WithLocations(NewLocations(berlin, madrid))
	b := Default().WithLocations(NewLocations(berlin).Append(madrid))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b.WithLanguage(Spanish)))
	assert.False(t, a.Equal(b.WithLocations2(NewLocations(berlin))))
	assert.False(t, a.Equal(Default().WithLocations2(a.Locations)), "collections are not interchangeable")
}

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, Default().Validate())
	require.NoError(t, Default().WithLocations(NewLocations(berlin, berlin)).Validate())

	err := Settings{
		Language:   Language(9),
		Locations:  NewLocations(Location{Lat: 100}),
		Locations2: NewLocations(Location{Lng: math.NaN()}),
	}.Validate()
	require.ErrorIs(t, err, core.ErrValidation)
	assert.Contains(t, err.Error(), "invalid language")
	assert.Contains(t, err.Error(), "knownLocations:")
	assert.Contains(t, err.Error(), "knownLocations2:")
}

func TestSettings_JSONShape(t *testing.T) {
	data, err := json.Marshal(Default().WithLanguage(German).WithLocations(NewLocations(Location{Lat: 10, Lng: 20})))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"language": "GERMAN",
		"knownLocations": [{"lat": 10, "lng": 20}],
		"knownLocations2": []
	}`, string(data))
}

package settings

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	berlin = Location{Lat: 52.52, Lng: 13.405}
	madrid = Location{Lat: 40.4168, Lng: -3.7038}
	lima   = Location{Lat: -12.0464, Lng: -77.0428}
)

func TestLocations_Append(t *testing.T) {
	var empty Locations
	one := empty.Append(berlin)
	two := one.Append(madrid)

	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 1, one.Len())
	assert.Equal(t, []Location{berlin, madrid}, two.Slice())

	// Appending to a shared prefix must not leak between results.
	a := two.Append(lima)
	b := two.Append(berlin)
	assert.Equal(t, []Location{berlin, madrid, lima}, a.Slice())
	assert.Equal(t, []Location{berlin, madrid, berlin}, b.Slice())
	assert.Equal(t, []Location{berlin, madrid}, two.Slice())
}

func TestLocations_Remove(t *testing.T) {
	tests := []struct {
		name   string
		start  []Location
		remove Location
		want   []Location
	}{
		{"Only Element", []Location{berlin}, berlin, nil},
		{"First Occurrence Only", []Location{berlin, madrid, berlin}, berlin, []Location{madrid, berlin}},
		{"Middle", []Location{berlin, madrid, lima}, madrid, []Location{berlin, lima}},
		{"Absent Is No-Op", []Location{berlin}, lima, []Location{berlin}},
		{"From Empty", nil, berlin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := NewLocations(tt.start...)
			got := start.Remove(tt.remove)

			assert.Equal(t, tt.want, got.Slice())
			assert.Equal(t, tt.start, start.Slice(), "receiver must be unchanged")
		})
	}
}

func TestLocations_EmptyIsCanonical(t *testing.T) {
	removed := NewLocations(berlin).Remove(berlin)

	assert.Equal(t, Locations{}, removed)
	assert.Equal(t, Locations{}, NewLocations())
	assert.True(t, removed.Equal(Locations{}))
}

func TestLocations_Accessors(t *testing.T) {
	l := NewLocations(berlin, madrid, berlin)

	assert.Equal(t, madrid, l.At(1))
	assert.Equal(t, 0, l.Index(berlin))
	assert.Equal(t, -1, l.Index(lima))
	assert.True(t, l.Contains(madrid))
	assert.False(t, l.Contains(lima))
	assert.Equal(t, []Location{berlin, madrid, berlin}, slices.Collect(l.All()))

	// Slice hands out a copy.
	s := l.Slice()
	s[0] = lima
	assert.Equal(t, berlin, l.At(0))
}

func TestLocations_JSON(t *testing.T) {
	data, err := json.Marshal(Locations{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	data, err = json.Marshal(NewLocations(berlin, berlin))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"lat":52.52,"lng":13.405},{"lat":52.52,"lng":13.405}]`, string(data))

	var got Locations
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Equal(NewLocations(berlin, berlin)))

	require.NoError(t, json.Unmarshal([]byte(`[]`), &got))
	assert.Equal(t, Locations{}, got)

	assert.Error(t, json.Unmarshal([]byte(`[null]`), &got))
	assert.Error(t, json.Unmarshal([]byte(`[{"lng":1}]`), &got))
}

package settings

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
)

// Locations is an immutable ordered sequence of locations. Duplicates are
// allowed and order is insertion order. Append and Remove return a new
// sequence and never write to the receiver's backing array.
//
// The zero value is an empty sequence.
type Locations struct {
	items []Location
}

// NewLocations returns a sequence holding a copy of items.
func NewLocations(items ...Location) Locations {
	if len(items) == 0 {
		return Locations{}
	}
	return Locations{items: slices.Clone(items)}
}

// Len returns the number of locations.
func (l Locations) Len() int {
	return len(l.items)
}

// At returns the location at index i. It panics if i is out of range.
func (l Locations) At(i int) Location {
	return l.items[i]
}

// All iterates over the locations in order.
func (l Locations) All() iter.Seq[Location] {
	return slices.Values(l.items)
}

// Slice returns a copy of the locations.
func (l Locations) Slice() []Location {
	return slices.Clone(l.items)
}

// Index returns the index of the first location equal to loc, or -1.
func (l Locations) Index(loc Location) int {
	return slices.Index(l.items, loc)
}

// Contains reports whether loc is present.
func (l Locations) Contains(loc Location) bool {
	return l.Index(loc) >= 0
}

// Equal reports whether both sequences hold the same locations in the same order.
func (l Locations) Equal(other Locations) bool {
	return slices.Equal(l.items, other.items)
}

// Append returns a new sequence with loc added at the end.
func (l Locations) Append(loc Location) Locations {
	next := make([]Location, len(l.items), len(l.items)+1)
	copy(next, l.items)
	return Locations{items: append(next, loc)}
}

// Remove returns a new sequence without the first location equal to loc.
// If loc is absent the receiver is returned unchanged.
func (l Locations) Remove(loc Location) Locations {
	i := l.Index(loc)
	if i < 0 {
		return l
	}
	if len(l.items) == 1 {
		return Locations{}
	}
	next := make([]Location, 0, len(l.items)-1)
	next = append(next, l.items[:i]...)
	next = append(next, l.items[i+1:]...)
	return Locations{items: next}
}

// MarshalJSON encodes the sequence as an array; empty encodes as [].
func (l Locations) MarshalJSON() ([]byte, error) {
	if len(l.items) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// UnmarshalJSON decodes an array of locations. null leaves the sequence as is.
func (l *Locations) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var items []Location
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = NewLocations(items...)
	return nil
}

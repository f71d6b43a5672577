// Package core holds the storage-agnostic contracts of the datastore.
package core

import "context"

// Storage holds the durable representation of exactly one document.
// Implementations must make Save all-or-nothing: a failed Save leaves the
// previously stored bytes intact.
type Storage interface {
	// Load returns the stored bytes. found is false when nothing has been
	// written yet; that is not an error.
	Load(ctx context.Context) (data []byte, found bool, err error)

	// Save replaces the stored bytes.
	Save(ctx context.Context, data []byte) error

	// Location describes where the document lives (a path, a key, ...).
	Location() string
}

// Codec converts a document to and from its durable representation.
type Codec[T any] interface {
	// Encode is deterministic: equal values produce equal bytes.
	Encode(v T) ([]byte, error)

	// Decode fails with ErrMalformedData when data does not parse.
	// Fields missing from data are taken from Default.
	Decode(data []byte) (T, error)

	// Default returns the canonical value used before anything is stored.
	Default() T
}

// Validator is implemented by documents that can check their own invariants.
type Validator interface {
	Validate() error
}

// Transform is a pure function from the current document to its successor.
type Transform[T any] func(current T) (T, error)

// EventType represents the kind of change observed on the durable representation.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an external change to the durable representation.
type Event struct {
	Type      EventType
	Location  string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Location
}

// Watchable is implemented by storages that can report external changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

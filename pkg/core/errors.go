package core

import "errors"

// Common errors.
var (
	ErrReadOnly = errors.New("store is in read-only mode")
	ErrClosed   = errors.New("store is closed")

	// ErrMalformedData reports a durable representation that exists but cannot
	// be decoded into a document.
	ErrMalformedData = errors.New("malformed data")

	// ErrPersistence reports a failed write of a candidate document.
	// The store keeps its previous value when this is returned.
	ErrPersistence = errors.New("persistence failed")

	// ErrValidation reports input that would produce an invalid document.
	ErrValidation = errors.New("validation failed")
)

// Package settings defines the application settings document and the named
// update operations applied to it through a store.
//
// Settings values are immutable in practice: every change builds a new value
// from the old one, and location collections are copy-on-write sequences, so
// a value handed to an observer never changes underneath it.
package settings

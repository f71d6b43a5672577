// Package datastore is the Composition Root for the datastore library.
//
// It persists a single typed document (by default the application Settings)
// to a file and keeps it in memory, connecting the store (pkg/store) with the
// filesystem adapter (pkg/adapters/fs).
//
// Guarantees:
//
//   - **One document per store**: load-or-default on open, no querying.
//   - **Serialized updates**: updates are pure transformations applied one at
//     a time in the order they are accepted; no update is lost.
//   - **All-or-nothing**: a value is published only after it was written
//     atomically; failures leave memory and disk untouched.
//   - **Observable**: every observer first receives the current value and
//     then every committed value, in order.
//   - **Formats**: JSON (default), YAML and TOML, chosen by file extension.
//
// Usage:
//
//	svc, err := datastore.OpenSettings("./app-settings.json",
//		datastore.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer svc.Close()
//
//	for s := range svc.Observe(ctx) {
//		render(s)
//	}
//
//	_, err = svc.SetLanguage(ctx, settings.German)
package datastore

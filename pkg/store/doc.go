// Package store owns the lifecycle of a single persisted document.
//
// A Store loads its document once at Open (or falls back to the codec's
// default), applies updates one at a time on a dedicated goroutine, persists
// every successful update before making it visible, and fans the committed
// values out to observers.
//
// Usage:
//
//	st, err := store.Open(ctx, storage, codec, store.Config{Logger: logger})
//	if err != nil {
//		return err
//	}
//	defer st.Close()
//
//	next, err := st.Update(ctx, func(cur Prefs) (Prefs, error) {
//		cur.Theme = "dark"
//		return cur, nil
//	})
package store

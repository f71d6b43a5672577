package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/datastore/pkg/core"
)

func TestStorage_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app-settings.json")
	s := NewStorage(Config{Path: path})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx)
	require.NoError(t, err)

	// Unrelated files in the same directory are filtered out.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	// Atomic writes only surface as the target file.
	require.NoError(t, s.Save(ctx, []byte(`{"language":"GERMAN"}`)))

	select {
	case e := <-events:
		assert.Equal(t, path, e.Location)
		assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for watch event")
	}

	cancel()

	// The channel is closed once the loop exits.
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel was not closed after cancel")
		}
	}
}

func TestStorage_WatchGlobCharactersInName(t *testing.T) {
	for _, name := range []string{"settings[1].json", "a*.json", "odd[.json", "{x}.json"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)
			s := NewStorage(Config{Path: path})

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			events, err := s.Watch(ctx)
			require.NoError(t, err)

			// Would match an unescaped pattern.
			require.NoError(t, os.WriteFile(filepath.Join(dir, "a1.json"), []byte("{}"), 0644))
			require.NoError(t, s.Save(ctx, []byte("{}")))

			select {
			case e := <-events:
				assert.Equal(t, path, e.Location)
			case <-time.After(3 * time.Second):
				t.Fatal("timeout waiting for watch event")
			}
		})
	}
}

func TestEscapeGlob(t *testing.T) {
	tests := []struct {
		name  string
		other string
	}{
		{"settings[1].json", "settings1.json"},
		{"a*.json", "ab.json"},
		{"a?.json", "ab.json"},
		{"{a,b}.json", "a.json"},
		{"back\\slash.json", "backslash.json"},
		{"odd[.json", "odd.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := escapeGlob(tt.name)
			require.True(t, doublestar.ValidatePattern(pattern))

			match, err := doublestar.Match(pattern, tt.name)
			require.NoError(t, err)
			assert.True(t, match, "pattern must match its own name")

			match, err = doublestar.Match(pattern, tt.other)
			require.NoError(t, err)
			assert.False(t, match)
		})
	}
}

func TestStorage_WatchMissingDirectory(t *testing.T) {
	s := NewStorage(Config{Path: filepath.Join(t.TempDir(), "missing", "app-settings.json")})

	_, err := s.Watch(context.Background())
	require.Error(t, err)
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	fired := make(chan core.Event, 10)

	for i := 0; i < 5; i++ {
		d.add(core.Event{Type: core.EventModify, Location: "a", Timestamp: int64(i)}, func(e core.Event) {
			fired <- e
		})
	}

	select {
	case e := <-fired:
		assert.Equal(t, int64(4), e.Timestamp, "last event wins")
	case <-time.After(time.Second):
		t.Fatal("debounced event never fired")
	}

	select {
	case e := <-fired:
		t.Fatalf("unexpected extra event: %+v", e)
	case <-time.After(60 * time.Millisecond):
	}

	d.stopAndWait(time.Second)
	d.add(core.Event{Location: "a"}, func(e core.Event) { fired <- e })
	select {
	case e := <-fired:
		t.Fatalf("event fired after stop: %+v", e)
	case <-time.After(60 * time.Millisecond):
	}
}

package fs

import (
	"sync"
	"time"

	"github.com/aretw0/datastore/pkg/core"
)

// debouncer coalesces bursts of events per location; the last event wins.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending[e.Location] = e
	if t, ok := d.timers[e.Location]; ok {
		if t.Stop() {
			t.Reset(d.delay)
			return
		}
		// Timer already fired and its callback owns the wg slot.
	}

	d.wg.Add(1)
	key := e.Location
	d.timers[key] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()

		d.mu.Lock()
		ev, ok := d.pending[key]
		delete(d.pending, key)
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()

		if ok && !stopped {
			fire(ev)
		}
	})
}

// stopAndWait drops pending events and waits for in-flight callbacks.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	d.pending = make(map[string]core.Event)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}

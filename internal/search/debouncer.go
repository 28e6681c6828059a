// Package search holds the live-search helpers used by dashboard sessions.
package search

import (
	"sync"
	"time"
)

// DefaultWait is the quiescence window before a search runs
const DefaultWait = 300 * time.Millisecond

// Debouncer runs only the last of a burst of calls, once no new call has
// arrived for the wait window. A stopped Debouncer ignores further calls.
type Debouncer struct {
	wait time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func NewDebouncer(wait time.Duration) *Debouncer {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Debouncer{wait: wait}
}

// Trigger schedules fn, replacing any call still waiting
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		current := gen == d.gen && !d.stopped
		d.mu.Unlock()
		// a timer that already fired can lose the race with a newer Trigger
		if current {
			fn()
		}
	})
}

// Stop cancels the pending call. It reports whether one was waiting.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	if d.timer == nil {
		return false
	}
	return d.timer.Stop()
}

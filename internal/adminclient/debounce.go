package adminclient

import (
	"sync"
	"time"
)

// DefaultQuietInterval is how long search input must stay unchanged before it applies.
const DefaultQuietInterval = 300 * time.Millisecond

// Debouncer runs a function once calls have stopped for the quiet interval.
// Rapid successive calls reset the timer.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	// pending counts scheduled or running callbacks so Wait can join them.
	pending sync.WaitGroup
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultQuietInterval
	}
	return &Debouncer{duration: duration}
}

// Debounce schedules fn, replacing any call that has not fired yet.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.pending.Add(1)
	d.timer = time.AfterFunc(d.duration, func() {
		defer d.pending.Done()
		fn()
	})
}

// Cancel drops the pending call, if any. A callback that already started keeps running.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.timer = nil
}

// Wait blocks until no callback is scheduled or running.
func (d *Debouncer) Wait() {
	d.pending.Wait()
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil && d.timer.Stop() {
		d.pending.Done()
	}
}

// Package debounce collapses bursts of input into the value that stays put
// for a quiet period.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period used for search input.
const DefaultQuiet = 500 * time.Millisecond

// Debouncer emits the last pushed value once no new value has arrived for the
// quiet period. Earlier values in a burst are never emitted.
type Debouncer struct {
	quiet time.Duration
	out   chan string

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending string
	armed   bool
	stopped bool
}

// New creates a debouncer. quiet <= 0 selects DefaultQuiet.
func New(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{
		quiet: quiet,
		out:   make(chan string, 1),
	}
}

// C delivers settled values. At most one undelivered value is held; a newer
// settled value replaces it.
func (d *Debouncer) C() <-chan string {
	return d.out
}

// Quiet returns the configured quiet period.
func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}

// Push records v and restarts the quiet period.
func (d *Debouncer) Push(v string) {
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
	d.pending = v
	d.armed = true
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(gen) })
}

// Flush emits the pending value immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || !d.armed {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.emitLocked()
}

// Cancel drops the pending value without emitting it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.armed = false
}

// Stop cancels any pending value and closes C.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.armed = false
	d.stopped = true
	close(d.out)
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// a newer push, flush or stop superseded this timer
	if gen != d.gen || d.stopped || !d.armed {
		return
	}
	d.emitLocked()
}

func (d *Debouncer) emitLocked() {
	v := d.pending
	d.armed = false

	select {
	case d.out <- v:
	default:
		// replace the undelivered value
		select {
		case <-d.out:
		default:
		}
		d.out <- v
	}
}

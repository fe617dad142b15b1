// Package debounce delays work on a rapidly changing value until the value
// has been quiet for a fixed interval.
//
// A Debouncer holds a single pending timer. Every Push replaces the pending
// value and restarts the timer, so only the most recent value is ever
// delivered. Stop makes the Debouncer inert; a timer that was already in
// flight when Stop ran will not deliver.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet interval used by callers that have no preference.
const DefaultDelay = 500 * time.Millisecond

// Timer is the part of *time.Timer the Debouncer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Debouncer
type Option func(*options)

type options struct {
	afterFunc AfterFunc
}

// WithAfterFunc replaces the timer source. Tests use it to fire timers by hand.
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *options) { o.afterFunc = fn }
}

// Debouncer delivers the latest pushed value to fn once no new value has
// arrived for delay.
type Debouncer[T any] struct {
	delay     time.Duration
	fn        func(T)
	afterFunc AfterFunc

	mu         sync.Mutex
	timer      Timer
	pending    T
	hasPending bool
	generation uint64
	stopped    bool
}

// New creates a Debouncer. A non-positive delay means DefaultDelay.
func New[T any](delay time.Duration, fn func(T), opts ...Option) *Debouncer[T] {
	o := options{afterFunc: realAfterFunc}
	for _, opt := range opts {
		opt(&o)
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay:     delay,
		fn:        fn,
		afterFunc: o.afterFunc,
	}
}

// Push records v as the latest value and restarts the quiet interval.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopTimerLocked()
	d.pending = v
	d.hasPending = true
	d.generation++
	generation := d.generation
	d.timer = d.afterFunc(d.delay, func() { d.fire(generation) })
}

// Flush delivers the pending value now, if there is one.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.stopped || !d.hasPending {
		d.mu.Unlock()
		return
	}
	d.stopTimerLocked()
	v := d.takeLocked()
	d.mu.Unlock()

	d.fn(v)
}

// Cancel drops the pending value without delivering it.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimerLocked()
	d.takeLocked()
}

// Stop cancels any pending value and ignores all later pushes.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTimerLocked()
	d.takeLocked()
	d.stopped = true
}

// Pending reports whether a value is waiting to be delivered.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasPending
}

func (d *Debouncer[T]) fire(generation uint64) {
	d.mu.Lock()
	if d.stopped || !d.hasPending || generation != d.generation {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	v := d.takeLocked()
	d.mu.Unlock()

	d.fn(v)
}

func (d *Debouncer[T]) stopTimerLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// takeLocked clears the pending value and invalidates any timer in flight.
func (d *Debouncer[T]) takeLocked() T {
	v := d.pending
	var zero T
	d.pending = zero
	d.hasPending = false
	d.generation++
	return v
}

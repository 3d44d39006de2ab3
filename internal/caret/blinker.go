// Package caret toggles caret visibility on a timer. It never touches the
// document; hosts redraw when the visibility changes.
package caret

import (
	"sync/atomic"
	"time"
)

// DefaultInterval is the blink half-period.
const DefaultInterval = 530 * time.Millisecond

// Blinker holds the caret visibility flag. Reset and Stop bump a generation
// counter so ticks scheduled before them can be recognized as stale.
//
// Blinker is safe for concurrent use.
type Blinker struct {
	interval   atomic.Int64
	visible    atomic.Bool
	generation atomic.Uint64
	stopped    atomic.Bool
}

// New returns a stopped blinker. A non-positive interval uses DefaultInterval.
func New(interval time.Duration) *Blinker {
	b := &Blinker{}
	b.SetInterval(interval)
	b.stopped.Store(true)
	return b
}

// Interval returns the blink half-period.
func (b *Blinker) Interval() time.Duration { return time.Duration(b.interval.Load()) }

// SetInterval changes the half-period for ticks scheduled from now on. A
// non-positive interval uses DefaultInterval. Call Reset afterwards to drop
// ticks scheduled with the old interval.
func (b *Blinker) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	b.interval.Store(int64(interval))
}

// Visible reports whether the caret should be drawn.
func (b *Blinker) Visible() bool { return b.visible.Load() }

// Generation identifies the current blink cycle.
func (b *Blinker) Generation() uint64 { return b.generation.Load() }

// Running reports whether the blinker is between Reset and Stop.
func (b *Blinker) Running() bool { return !b.stopped.Load() }

// Reset shows the caret and starts a new blink cycle, as on focus or after
// a keystroke. It returns the new generation.
func (b *Blinker) Reset() uint64 {
	b.visible.Store(true)
	b.stopped.Store(false)
	return b.generation.Add(1)
}

// Stop hides the caret and invalidates outstanding ticks, as on blur.
func (b *Blinker) Stop() {
	b.visible.Store(false)
	b.stopped.Store(true)
	b.generation.Add(1)
}

// Toggle flips visibility if gen is still the current generation and the
// blinker is running. It reports whether the flip happened.
func (b *Blinker) Toggle(gen uint64) bool {
	if b.stopped.Load() || gen != b.generation.Load() {
		return false
	}
	for {
		v := b.visible.Load()
		if b.visible.CompareAndSwap(v, !v) {
			return true
		}
	}
}

// Package sched provides a virtual clock with cancellable timers.
//
// Game sessions never read wall time. The platform advances the clock by one
// frame interval per tick and tests advance it by hand, so every timer fires
// at a deterministic point in the simulation.
package sched

import (
	"sort"
	"time"
)

// Handle identifies a scheduled timer.
type Handle struct {
	clock    *Clock
	seq      uint64
	due      time.Duration
	period   func() time.Duration // nil for one-shot timers
	fn       func()
	canceled bool
}

// Cancel stops the timer. Calling it more than once is a no-op.
func (h *Handle) Cancel() {
	if h == nil || h.canceled {
		return
	}
	h.canceled = true
	h.clock.remove(h)
}

// Active reports whether the timer is still scheduled.
func (h *Handle) Active() bool {
	return h != nil && !h.canceled
}

// Remaining returns the time left until the timer next fires, or zero when
// it is no longer scheduled.
func (h *Handle) Remaining() time.Duration {
	if !h.Active() {
		return 0
	}
	return max(h.due-h.clock.now, 0)
}

// Clock is a virtual monotonic clock. It is not safe for concurrent use;
// sessions drive it from a single event loop.
type Clock struct {
	now    time.Duration
	seq    uint64
	timers []*Handle
	firing *Handle // repeating timer whose callback is running
	resets uint64
}

// NewClock returns a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// Now returns the elapsed virtual time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending returns the number of scheduled timers.
func (c *Clock) Pending() int {
	return len(c.timers)
}

// After schedules fn to run once, d from now.
func (c *Clock) After(d time.Duration, fn func()) *Handle {
	return c.schedule(d, nil, fn)
}

// Every schedules fn to run every period, first firing one period from now.
func (c *Clock) Every(period time.Duration, fn func()) *Handle {
	return c.EveryFunc(func() time.Duration { return period }, fn)
}

// EveryFunc schedules a repeating timer whose period is asked again after
// every firing, which lets spawn cadences shrink as a session goes on.
func (c *Clock) EveryFunc(period func() time.Duration, fn func()) *Handle {
	return c.schedule(minPeriod(period()), period, fn)
}

// EveryFuncAfter is EveryFunc with the first firing first from now. Resumed
// sessions use it to finish a period that a pause interrupted.
func (c *Clock) EveryFuncAfter(first time.Duration, period func() time.Duration, fn func()) *Handle {
	return c.schedule(minPeriod(first), period, fn)
}

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers with equal deadlines fire in the order they were scheduled.
func (c *Clock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := c.now + d
	gen := c.resets

	for len(c.timers) > 0 && c.timers[0].due <= target {
		h := c.timers[0]
		c.timers = c.timers[1:]
		c.now = h.due

		if h.period == nil {
			h.canceled = true
			h.fn()
			if c.resets != gen {
				return
			}
			continue
		}

		c.firing = h
		h.fn()
		c.firing = nil
		if c.resets != gen {
			return
		}
		if h.canceled {
			continue
		}
		h.due = c.now + minPeriod(h.period())
		c.seq++
		h.seq = c.seq
		c.insert(h)
	}
	c.now = target
}

// Reset cancels every timer and rewinds the clock to zero. A Reset from
// inside a callback also ends the Advance that ran it.
func (c *Clock) Reset() {
	c.resets++
	for _, h := range c.timers {
		h.canceled = true
	}
	if c.firing != nil {
		c.firing.canceled = true
	}
	c.timers = nil
	c.now = 0
}

func (c *Clock) schedule(d time.Duration, period func() time.Duration, fn func()) *Handle {
	if d < 0 {
		d = 0
	}
	c.seq++
	h := &Handle{
		clock:  c,
		seq:    c.seq,
		due:    c.now + d,
		period: period,
		fn:     fn,
	}
	c.insert(h)
	return h
}

func (c *Clock) insert(h *Handle) {
	i := sort.Search(len(c.timers), func(i int) bool {
		t := c.timers[i]
		return t.due > h.due || (t.due == h.due && t.seq > h.seq)
	})
	c.timers = append(c.timers, nil)
	copy(c.timers[i+1:], c.timers[i:])
	c.timers[i] = h
}

func (c *Clock) remove(h *Handle) {
	for i, t := range c.timers {
		if t == h {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// minPeriod keeps repeating timers from spinning at a zero period.
func minPeriod(d time.Duration) time.Duration {
	if d < time.Millisecond {
		return time.Millisecond
	}
	return d
}

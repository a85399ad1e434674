package mock

import (
	"sync"
	"time"

	"github.com/reugn/go-every/every"
)

// Clock is a manually driven every.Clock. Timers fire synchronously,
// in fire time order, from Advance.
type Clock struct {
	mtx    sync.Mutex
	now    time.Time
	seq    int
	timers []*timer
	armed  []time.Duration
}

var _ every.Clock = (*Clock)(nil)

type timer struct {
	clock *Clock
	id    int
	when  time.Time
	f     func()
	done  bool
}

// NewClock returns a new Clock set to now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current time of the clock.
func (c *Clock) Now() time.Time {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.now
}

// AfterFunc registers f to be called once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, f func()) every.Timer {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.seq++
	t := &timer{clock: c, id: c.seq, when: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	c.armed = append(c.armed, d)
	return t
}

func (t *timer) Stop() bool {
	c := t.clock
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if t.done {
		return false
	}
	t.done = true
	c.remove(t)
	return true
}

// remove must be called with the lock held.
func (c *Clock) remove(t *timer) {
	for i, pending := range c.timers {
		if pending == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Advance moves the clock forward by d, firing every timer that becomes
// due on the way. Timers armed by fired callbacks fire too if they fall
// within d.
func (c *Clock) Advance(d time.Duration) {
	c.mtx.Lock()
	target := c.now.Add(d)
	c.mtx.Unlock()
	for {
		c.mtx.Lock()
		next := c.earliest(target)
		if next == nil {
			if target.After(c.now) {
				c.now = target
			}
			c.mtx.Unlock()
			return
		}
		next.done = true
		c.remove(next)
		if next.when.After(c.now) {
			c.now = next.when
		}
		c.mtx.Unlock()
		next.f()
	}
}

// earliest must be called with the lock held.
func (c *Clock) earliest(target time.Time) *timer {
	var next *timer
	for _, t := range c.timers {
		if t.when.After(target) {
			continue
		}
		if next == nil || t.when.Before(next.when) ||
			(t.when.Equal(next.when) && t.id < next.id) {
			next = t
		}
	}
	return next
}

// Elapse moves the clock forward by d without firing timers, as if d
// passed while a callback was running.
func (c *Clock) Elapse(d time.Duration) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.now = c.now.Add(d)
}

// Pending returns the number of timers that have neither fired nor
// been stopped.
func (c *Clock) Pending() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.timers)
}

// Armed returns the delays of all timers registered so far.
func (c *Clock) Armed() []time.Duration {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return append([]time.Duration(nil), c.armed...)
}

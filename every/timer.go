package every

import (
	"sync"
	"time"
)

// DefaultMaxTimerDelay bounds a single underlying timer wait. Longer delays
// are covered by chaining waits of at most this length.
const DefaultMaxTimerDelay = 24 * time.Hour

// Timer is a pending single-shot callback.
type Timer interface {
	// Stop prevents the Timer from firing. It returns false if the timer
	// has already fired or been stopped.
	Stop() bool
}

// Clock provides the current time and single-shot timers.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// LongTimer invokes a function once after an arbitrarily long delay by
// chaining clock timers of at most maxDelay each. A single LongTimer
// value stands for the whole chain.
type LongTimer struct {
	mtx       sync.Mutex
	clock     Clock
	maxDelay  time.Duration
	remaining time.Duration
	segment   Timer
	done      bool
	f         func()
}

// Verify LongTimer satisfies the Timer interface.
var _ Timer = (*LongTimer)(nil)

// AfterFunc waits for d to elapse on the clock and then calls f in its
// own goroutine. Non-positive durations fire immediately. A non-positive
// maxDelay disables chaining.
func AfterFunc(clock Clock, d, maxDelay time.Duration, f func()) *LongTimer {
	if d < 0 {
		d = 0
	}
	t := &LongTimer{
		clock:     clock,
		maxDelay:  maxDelay,
		remaining: d,
		f:         f,
	}
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.armSegment()
	return t
}

// armSegment must be called with the lock held.
func (t *LongTimer) armSegment() {
	step := t.remaining
	if t.maxDelay > 0 && step > t.maxDelay {
		step = t.maxDelay
	}
	t.remaining -= step
	t.segment = t.clock.AfterFunc(step, t.tick)
}

func (t *LongTimer) tick() {
	t.mtx.Lock()
	if t.done {
		t.mtx.Unlock()
		return
	}
	if t.remaining > 0 {
		t.armSegment()
		t.mtx.Unlock()
		return
	}
	t.done = true
	t.mtx.Unlock()
	t.f()
}

// Stop prevents the LongTimer from firing. It is safe to call repeatedly.
func (t *LongTimer) Stop() bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.segment.Stop()
	return true
}

// Remaining returns the part of the delay not yet covered by the
// pending segment.
func (t *LongTimer) Remaining() time.Duration {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.remaining
}

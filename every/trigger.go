package every

import (
	"fmt"
	"sync"
	"time"
)

// Trigger computes the fire times of a Schedule.
type Trigger interface {
	// NextFireTime returns the next fire time relative to now.
	NextFireTime(now time.Time) (time.Time, error)

	// Description returns the description of the Trigger.
	Description() string
}

// IntervalTrigger fires every Interval, optionally pinned to calendar
// field values by an Alignment. The next fire time is always derived
// from now, never from the previous fire time, so firing delays do not
// accumulate.
type IntervalTrigger struct {
	Interval  Interval
	Alignment Alignment
	Location  *time.Location
	WeekStart time.Weekday
}

// Verify IntervalTrigger satisfies the Trigger interface.
var _ Trigger = (*IntervalTrigger)(nil)

// NewIntervalTrigger returns a new IntervalTrigger in the local time zone,
// with weeks starting on Monday.
func NewIntervalTrigger(interval Interval, alignment Alignment) *IntervalTrigger {
	return &IntervalTrigger{
		Interval:  interval,
		Alignment: alignment,
		Location:  time.Local,
		WeekStart: time.Monday,
	}
}

// NextFireTime returns now snapped to the alignment, plus the interval.
func (it *IntervalTrigger) NextFireTime(now time.Time) (time.Time, error) {
	if err := it.Interval.validate(); err != nil {
		return time.Time{}, err
	}
	if it.Location != nil {
		now = now.In(it.Location)
	}
	if it.Alignment.Enabled() {
		resolved := it.Alignment.Resolve(it.Interval.Unit, now, it.WeekStart)
		return alignedAdd(now, it.Interval, resolved, it.WeekStart), nil
	}
	return it.Interval.AddTo(now), nil
}

// Description returns the description of the trigger.
func (it *IntervalTrigger) Description() string {
	return fmt.Sprintf("IntervalTrigger%s%s", separator, it.describe())
}

func (it *IntervalTrigger) describe() string {
	if it.Alignment.Enabled() {
		return fmt.Sprintf("%s%saligned(%s)", it.Interval, separator, it.Alignment)
	}
	return it.Interval.String()
}

// RunOnceTrigger fires once after Delay and then expires.
type RunOnceTrigger struct {
	Delay   time.Duration
	mtx     sync.Mutex
	expired bool
}

// Verify RunOnceTrigger satisfies the Trigger interface.
var _ Trigger = (*RunOnceTrigger)(nil)

// NewRunOnceTrigger returns a new RunOnceTrigger with the given delay.
func NewRunOnceTrigger(delay time.Duration) *RunOnceTrigger {
	return &RunOnceTrigger{Delay: delay}
}

// NextFireTime returns now plus the delay on the first call.
// Subsequent calls return ErrTriggerExpired.
func (ot *RunOnceTrigger) NextFireTime(now time.Time) (time.Time, error) {
	ot.mtx.Lock()
	defer ot.mtx.Unlock()
	if ot.expired {
		return time.Time{}, ErrTriggerExpired
	}
	ot.expired = true
	return now.Add(ot.Delay), nil
}

// Description returns the description of the trigger.
func (ot *RunOnceTrigger) Description() string {
	ot.mtx.Lock()
	defer ot.mtx.Unlock()
	status := "valid"
	if ot.expired {
		status = "expired"
	}
	return fmt.Sprintf("RunOnceTrigger%s%s%s%s", separator, ot.Delay, separator, status)
}

const separator = "::"

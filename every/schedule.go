package every

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/reugn/go-every/logger"
)

// State is the lifecycle state of a Schedule.
type State int

// Schedule states.
const (
	// Idle is the initial state; no timer is pending.
	Idle State = iota
	// Armed means the schedule is running and owns one pending timer.
	Armed
	// Stopped means the schedule was stopped and no timer is pending.
	// A stopped schedule can be started again.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Action is invoked with the fire time it was scheduled for.
type Action func(ctx context.Context, fireTime time.Time)

// Schedule repeatedly invokes an Action at the fire times of its Trigger.
// Each cycle computes the next fire time from the current time, arms a
// single timer and, once the action returns, computes and arms the next
// one. A Schedule never has more than one pending timer.
type Schedule struct {
	mtx     sync.Mutex
	trigger Trigger
	action  Action
	opts    *scheduleOptions

	running    bool
	state      State
	generation uint64
	timer      Timer
	fireTime   time.Time
	ctx        context.Context
	release    func() bool
}

// New returns an idle Schedule. Without options it fires every second,
// at the top of the second.
func New(opts ...Option) (*Schedule, error) {
	o := defaultScheduleOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.clock == nil {
		return nil, illegalArgumentError("clock is nil")
	}
	if o.logger == nil {
		return nil, illegalArgumentError("logger is nil")
	}
	if o.location == nil {
		return nil, illegalArgumentError("location is nil")
	}

	trigger := o.trigger
	if trigger == nil {
		interval := Interval{Value: 1, Unit: Second}
		if o.interval != nil {
			interval = *o.interval
		}
		if err := interval.validate(); err != nil {
			return nil, err
		}
		alignment := DefaultAlignment()
		if o.alignment != nil {
			alignment = *o.alignment
		}
		trigger = &IntervalTrigger{
			Interval:  interval,
			Alignment: alignment,
			Location:  o.location,
			WeekStart: o.weekStart,
		}
	} else if o.interval != nil || o.alignment != nil {
		return nil, illegalArgumentError("a custom trigger cannot be combined with an interval or alignment")
	}

	return &Schedule{
		trigger: trigger,
		action:  func(context.Context, time.Time) {},
		opts:    o,
	}, nil
}

// Every returns an idle Schedule firing every value units.
func Every(value int, unit TimeUnit, opts ...Option) (*Schedule, error) {
	interval, err := NewInterval(value, unit)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithInterval(interval)}, opts...)...)
}

// Do sets the action of the schedule. When the schedule is armed, the
// pending cycle keeps the previous action.
func (s *Schedule) Do(action Action) *Schedule {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if action == nil {
		action = func(context.Context, time.Time) {}
	}
	s.action = action
	return s
}

// Align replaces the alignment of an interval schedule. When the schedule
// is armed, the change applies from the next computed fire time. Schedules
// built with a custom Trigger ignore alignment.
func (s *Schedule) Align(alignment Alignment) *Schedule {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	it, ok := s.trigger.(*IntervalTrigger)
	if !ok {
		s.opts.logger.Warn("Alignment ignored by custom trigger.",
			"trigger", s.trigger.Description())
		return s
	}
	next := *it
	next.Alignment = alignment
	s.trigger = &next
	return s
}

// Start arms the schedule. Starting an armed schedule replaces its pending
// timer. The schedule stops when ctx is done. If the first fire time cannot
// be computed, the error is returned and no timer is left pending.
func (s *Schedule) Start(ctx context.Context) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.running {
		s.opts.logger.Debug("Restarting armed schedule.", "trigger", s.trigger.Description())
		s.halt()
	}

	previous := s.state
	s.generation++
	s.running = true
	s.ctx = ctx
	if err := s.arm(s.generation); err != nil {
		s.halt()
		if previous == Idle {
			s.state = Idle
		}
		return err
	}

	gen := s.generation
	s.release = context.AfterFunc(ctx, func() { s.stop(gen) })
	s.opts.logger.Info("Schedule started.", "trigger", s.trigger.Description(),
		"next", s.fireTime)
	return nil
}

// Stop cancels the pending timer. An action that is already executing
// completes, but is not followed by another cycle. Stopping a schedule
// that is not armed is a no-op.
func (s *Schedule) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.running {
		return
	}
	s.halt()
	s.opts.logger.Info("Schedule stopped.", "trigger", s.trigger.Description())
}

// stop stops the run identified by gen, if it is still current.
func (s *Schedule) stop(gen uint64) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.running || s.generation != gen {
		return
	}
	s.halt()
	s.opts.logger.Info("Schedule context done.", "trigger", s.trigger.Description())
}

// halt must be called with the lock held.
func (s *Schedule) halt() {
	s.running = false
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.fireTime = time.Time{}
	s.state = Stopped
}

// arm computes the next fire time and arms a timer for it. It must be
// called with the lock held.
func (s *Schedule) arm(gen uint64) error {
	now := s.opts.clock.Now()
	fireTime, err := s.trigger.NextFireTime(now)
	if err != nil {
		return err
	}
	delay := fireTime.Sub(now)
	if delay < 0 {
		delay = 0
	}

	action, ctx := s.action, s.ctx
	s.fireTime = fireTime
	s.timer = AfterFunc(s.opts.clock, delay, s.opts.maxTimerDelay, func() {
		s.fire(ctx, gen, fireTime, action)
	})
	s.state = Armed
	s.opts.logger.Debug("Timer armed.", "fire_time", fireTime, "delay", delay)
	return nil
}

func (s *Schedule) fire(ctx context.Context, gen uint64, fireTime time.Time, action Action) {
	s.mtx.Lock()
	if !s.running || s.generation != gen {
		s.mtx.Unlock()
		return
	}
	s.timer = nil
	s.mtx.Unlock()

	s.opts.logger.Debug("Schedule fired.", "fire_time", fireTime)
	s.invoke(ctx, fireTime, action)

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.running || s.generation != gen {
		return
	}
	if err := s.arm(gen); err != nil {
		if errors.Is(err, ErrTriggerExpired) {
			s.opts.logger.Info("Schedule completed.", "trigger", s.trigger.Description())
		} else {
			s.opts.logger.Error("Failed to rearm schedule.", "trigger", s.trigger.Description(),
				"error", err)
		}
		s.halt()
	}
}

func (s *Schedule) invoke(ctx context.Context, fireTime time.Time, action Action) {
	defer func() {
		if r := recover(); r != nil {
			s.opts.logger.Error("Action panicked.", "fire_time", fireTime, "panic", r)
		}
	}()
	action(ctx, fireTime)
}

// State returns the current lifecycle state.
func (s *Schedule) State() State {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.state
}

// IsRunning reports whether the schedule has been started and not stopped.
func (s *Schedule) IsRunning() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.running
}

// NextFireTime returns the fire time of the current cycle, or the zero
// time if the schedule is not running.
func (s *Schedule) NextFireTime() time.Time {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.fireTime
}

// Trigger returns the trigger computing the fire times.
func (s *Schedule) Trigger() Trigger {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.trigger
}

// Interval returns the interval of an interval schedule.
func (s *Schedule) Interval() (Interval, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if it, ok := s.trigger.(*IntervalTrigger); ok {
		return it.Interval, true
	}
	return Interval{}, false
}

// Alignment returns the alignment of an interval schedule.
func (s *Schedule) Alignment() (Alignment, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if it, ok := s.trigger.(*IntervalTrigger); ok {
		return it.Alignment, true
	}
	return Alignment{}, false
}

// Description returns the description of the schedule's trigger.
func (s *Schedule) Description() string {
	return s.Trigger().Description()
}

// Logger returns the logger of the schedule.
func (s *Schedule) Logger() logger.Logger {
	return s.opts.logger
}

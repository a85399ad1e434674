package every

import (
	"time"

	"github.com/reugn/go-every/logger"
)

type scheduleOptions struct {
	interval      *Interval
	alignment     *Alignment
	trigger       Trigger
	location      *time.Location
	weekStart     time.Weekday
	clock         Clock
	maxTimerDelay time.Duration
	logger        logger.Logger
}

func defaultScheduleOptions() *scheduleOptions {
	return &scheduleOptions{
		location:      time.Local,
		weekStart:     time.Monday,
		clock:         SystemClock(),
		maxTimerDelay: DefaultMaxTimerDelay,
		logger:        logger.NoOpLogger{},
	}
}

// Option configures a Schedule.
type Option func(*scheduleOptions)

// WithInterval sets the interval of the schedule. The default is one second.
func WithInterval(interval Interval) Option {
	return func(o *scheduleOptions) {
		o.interval = &interval
	}
}

// WithAlignment sets the initial alignment of an interval schedule.
// The default is DefaultAlignment.
func WithAlignment(alignment Alignment) Option {
	return func(o *scheduleOptions) {
		o.alignment = &alignment
	}
}

// WithTrigger replaces the interval trigger with a custom Trigger.
// It cannot be combined with WithInterval or WithAlignment.
func WithTrigger(trigger Trigger) Option {
	return func(o *scheduleOptions) {
		o.trigger = trigger
	}
}

// WithLocation sets the time zone used for calendar arithmetic and
// alignment. The default is time.Local.
func WithLocation(location *time.Location) Option {
	return func(o *scheduleOptions) {
		o.location = location
	}
}

// WithWeekStart sets the weekday numbered 1 in weekly alignments.
// The default is time.Monday.
func WithWeekStart(weekday time.Weekday) Option {
	return func(o *scheduleOptions) {
		o.weekStart = weekday
	}
}

// WithClock sets the clock driving the schedule.
func WithClock(clock Clock) Option {
	return func(o *scheduleOptions) {
		o.clock = clock
	}
}

// WithMaxTimerDelay sets the longest single timer wait. Longer delays
// are chained transparently.
func WithMaxTimerDelay(d time.Duration) Option {
	return func(o *scheduleOptions) {
		o.maxTimerDelay = d
	}
}

// WithLogger sets the logger used by the schedule.
func WithLogger(l logger.Logger) Option {
	return func(o *scheduleOptions) {
		o.logger = l
	}
}

package every

import (
	"fmt"
	"strings"
	"time"
)

// Fields is a partial set of calendar field values. A nil field is unset.
// Day is the day of the month for monthly and yearly schedules and the
// 1-based day of the week for weekly schedules.
type Fields struct {
	Millisecond *int `koanf:"millisecond" yaml:"millisecond,omitempty"`
	Second      *int `koanf:"second" yaml:"second,omitempty"`
	Minute      *int `koanf:"minute" yaml:"minute,omitempty"`
	Hour        *int `koanf:"hour" yaml:"hour,omitempty"`
	Day         *int `koanf:"day" yaml:"day,omitempty"`
	Month       *int `koanf:"month" yaml:"month,omitempty"`
}

// Int returns a pointer to v, for populating Fields.
func Int(v int) *int {
	return &v
}

// refs returns the fields ordered from the finest to the coarsest.
func (f *Fields) refs() [6]**int {
	return [6]**int{&f.Millisecond, &f.Second, &f.Minute, &f.Hour, &f.Day, &f.Month}
}

// Set sets the field with the given name: millisecond, second, minute,
// hour, day or month.
func (f *Fields) Set(name string, value int) error {
	for i, ref := range f.refs() {
		if fieldNames[i] == name {
			*ref = Int(value)
			return nil
		}
	}
	return illegalArgumentError(fmt.Sprintf("unknown alignment field %q", name))
}

// startOf holds the start-of-period value for each field in refs order.
var startOf = [6]int{0, 0, 0, 0, 1, 1}

var fieldNames = [6]string{"millisecond", "second", "minute", "hour", "day", "month"}

// Alignment pins fire times to calendar field values. The zero value is
// disabled: fire times are computed by adding the interval to the
// current time.
type Alignment struct {
	enabled bool
	fields  Fields
}

// NoAlignment returns a disabled Alignment.
func NoAlignment() Alignment {
	return Alignment{}
}

// DefaultAlignment aligns every field to the start of its period. For a
// schedule in seconds this is the top of the second.
func DefaultAlignment() Alignment {
	return Align(Fields{Month: Int(1)})
}

// Align returns an enabled Alignment for the given fields. Every field
// finer than the coarsest set field that is not set explicitly defaults
// to the start of its period: zero, or one for the day. Align({Month: 3})
// is therefore March 1st 00:00:00.000.
func Align(fields Fields) Alignment {
	refs := fields.refs()
	coarsest := -1
	for i, ref := range refs {
		if *ref != nil {
			v := **ref
			*ref = &v
			coarsest = i
		}
	}
	for i := 0; i < coarsest; i++ {
		if *refs[i] == nil {
			*refs[i] = Int(startOf[i])
		}
	}
	return Alignment{enabled: true, fields: fields}
}

// Enabled reports whether the alignment is active.
func (a Alignment) Enabled() bool {
	return a.enabled
}

// Fields returns a copy of the normalized alignment fields.
func (a Alignment) Fields() Fields {
	fields := a.fields
	for _, ref := range fields.refs() {
		if *ref != nil {
			v := **ref
			*ref = &v
		}
	}
	return fields
}

// String describes the set alignment fields, e.g. "hour=5 minute=30".
func (a Alignment) String() string {
	if !a.enabled {
		return "disabled"
	}
	var parts []string
	refs := a.fields.refs()
	for i := len(refs) - 1; i >= 0; i-- {
		if *refs[i] != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", fieldNames[i], **refs[i]))
		}
	}
	if len(parts) == 0 {
		return "any"
	}
	return strings.Join(parts, " ")
}

// ResolvedAlignment holds a complete set of alignment values.
type ResolvedAlignment struct {
	Millisecond int
	Second      int
	Minute      int
	Hour        int
	Day         int
	Month       int
}

// Resolve fills every unset field with the value now already has, so that
// only the explicitly aligned fields change when now is snapped. For weekly
// schedules the day defaults to the 1-based weekday of now counted from
// weekStart.
func (a Alignment) Resolve(unit TimeUnit, now time.Time, weekStart time.Weekday) ResolvedAlignment {
	day := now.Day()
	if unit == Week {
		day = weekdayIndex(now, weekStart)
	}
	value := func(field *int, current int) int {
		if field != nil {
			return *field
		}
		return current
	}
	return ResolvedAlignment{
		Millisecond: value(a.fields.Millisecond, now.Nanosecond()/int(time.Millisecond)),
		Second:      value(a.fields.Second, now.Second()),
		Minute:      value(a.fields.Minute, now.Minute()),
		Hour:        value(a.fields.Hour, now.Hour()),
		Day:         value(a.fields.Day, day),
		Month:       value(a.fields.Month, int(now.Month())),
	}
}

// weekdayIndex returns the 1-based weekday of t, where 1 is weekStart.
func weekdayIndex(t time.Time, weekStart time.Weekday) int {
	return (int(t.Weekday())-int(weekStart)+7)%7 + 1
}

// wallClock is a calendar date and clock time whose fields may be out of
// range until it is converted with time.Date.
type wallClock struct {
	year   int
	month  time.Month
	day    int
	hour   int
	minute int
	sec    int
	nsec   int
}

func wallClockOf(t time.Time) wallClock {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	return wallClock{year, month, day, hour, minute, sec, t.Nanosecond()}
}

func (w wallClock) in(loc *time.Location) time.Time {
	return time.Date(w.year, w.month, w.day, w.hour, w.minute, w.sec, w.nsec, loc)
}

// snap overwrites the fields of now that are finer than or equal to unit
// with the resolved alignment values. The day is not clamped and a
// nonexistent wall time is not normalized here, so that the interval can
// be added to the aligned fields first.
func snap(now time.Time, unit TimeUnit, r ResolvedAlignment, weekStart time.Weekday) wallClock {
	w := wallClockOf(now)

	// fallthrough walks from the coarse unit down to the finest field
	switch unit {
	case Year:
		w.month = time.Month(r.Month)
		fallthrough
	case Month:
		w.day = r.Day
		fallthrough
	case Day:
		w.hour = r.Hour
		fallthrough
	case Hour:
		w.minute = r.Minute
		fallthrough
	case Minute:
		w.sec = r.Second
		fallthrough
	case Second:
		w.nsec = r.Millisecond * int(time.Millisecond)
	case Week:
		// Day sets the weekday within the week of now, counted from
		// weekStart, rather than moving to its next occurrence: with
		// Monday as day 1, a Wednesday snaps back to the Monday before.
		w.day += mod(r.Day-1, 7) - (weekdayIndex(now, weekStart) - 1)
		w.hour, w.minute, w.sec = r.Hour, r.Minute, r.Second
		w.nsec = r.Millisecond * int(time.Millisecond)
	}
	return w
}

// alignedAdd snaps now to the alignment and adds the interval. Calendar
// units are added to the aligned fields before they are converted, so a
// day is clamped against the target month and a wall time falling into a
// daylight saving gap only shifts on the day of the gap.
func alignedAdd(now time.Time, interval Interval, r ResolvedAlignment, weekStart time.Weekday) time.Time {
	w := snap(now, interval.Unit, r, weekStart)
	switch interval.Unit {
	case Day:
		w.day += interval.Value
	case Week:
		w.day += 7 * interval.Value
	case Month, Year:
		months := interval.Value
		if interval.Unit == Year {
			months *= 12
		}
		first := time.Date(w.year, w.month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
		w.year, w.month = first.Year(), first.Month()
		w.day = clampDay(w.year, w.month, w.day)
	default:
		return interval.AddTo(w.in(now.Location()))
	}
	return w.in(now.Location())
}

func mod(a, b int) int {
	return (a%b + b) % b
}

package every

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Interval represents "every Value Units".
type Interval struct {
	Value int
	Unit  TimeUnit
}

// NewInterval returns a validated Interval.
func NewInterval(value int, unit TimeUnit) (Interval, error) {
	interval := Interval{Value: value, Unit: unit}
	if err := interval.validate(); err != nil {
		return Interval{}, err
	}
	return interval, nil
}

func (i Interval) validate() error {
	if i.Value < 1 {
		return illegalArgumentError(fmt.Sprintf("interval count must be positive: %d", i.Value))
	}
	if !i.Unit.valid() {
		return illegalArgumentError(fmt.Sprintf("invalid interval unit: %s", i.Unit))
	}
	return nil
}

// ParseInterval parses the <digits><unit> notation, e.g. "5years",
// "1minute" or "10 s". Compound, fractional and negative values are
// not supported.
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	split := strings.IndexFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if split < 0 {
		split = len(s)
	}
	digits, alias := s[:split], strings.TrimSpace(s[split:])

	unit, err := ParseTimeUnit(alias)
	if err != nil {
		return Interval{}, err
	}
	if unit == AllTime {
		return Interval{}, unknownTimeUnitError(alias)
	}
	if digits == "" {
		return Interval{}, illegalArgumentError(fmt.Sprintf("missing interval count in %q", s))
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return Interval{}, illegalArgumentError(fmt.Sprintf("interval count %q: %s", digits, err))
	}
	return NewInterval(value, unit)
}

// String returns the interval in the notation accepted by ParseInterval.
func (i Interval) String() string {
	return fmt.Sprintf("%d%s", i.Value, i.Unit)
}

// AddTo returns t advanced by the interval. Seconds, minutes and hours
// are fixed durations. Days and weeks keep the wall clock time across
// daylight saving changes. Months and years clamp the day of month to
// the length of the target month.
func (i Interval) AddTo(t time.Time) time.Time {
	return add(t, i.Unit, i.Value)
}

func add(t time.Time, unit TimeUnit, n int) time.Time {
	switch unit {
	case Second:
		return addDuration(t, time.Second, n)
	case Minute:
		return addDuration(t, time.Minute, n)
	case Hour:
		return addDuration(t, time.Hour, n)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return addMonths(t, n)
	case Year:
		return addMonths(t, 12*n)
	}
	return t
}

// addDuration adds n units of d in chunks that do not overflow time.Duration.
func addDuration(t time.Time, d time.Duration, n int) time.Time {
	maxCount := int(math.MaxInt64 / int64(d))
	for n > maxCount {
		t = t.Add(time.Duration(maxCount) * d)
		n -= maxCount
	}
	return t.Add(time.Duration(n) * d)
}

func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	return time.Date(first.Year(), first.Month(), clampDay(first.Year(), first.Month(), day),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func clampDay(year int, month time.Month, day int) int {
	if last := daysIn(year, month); day > last {
		return last
	}
	if day < 1 {
		return 1
	}
	return day
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

package every_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/internal/assert"
)

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input    string
		expected every.Interval
	}{
		{"5years", every.Interval{Value: 5, Unit: every.Year}},
		{"1minute", every.Interval{Value: 1, Unit: every.Minute}},
		{"10s", every.Interval{Value: 10, Unit: every.Second}},
		{"  3 h ", every.Interval{Value: 3, Unit: every.Hour}},
		{"2w", every.Interval{Value: 2, Unit: every.Week}},
		{"6m", every.Interval{Value: 6, Unit: every.Month}},
		{"15min", every.Interval{Value: 15, Unit: every.Minute}},
		{"1a", every.Interval{Value: 1, Unit: every.Year}},
		{"30days", every.Interval{Value: 30, Unit: every.Day}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			interval, err := every.ParseInterval(tt.input)
			assert.IsNil(t, err)
			assert.Equal(t, interval, tt.expected)
		})
	}
}

func TestParseIntervalUnknownUnit(t *testing.T) {
	for _, input := range []string{"7xyz", "1h30m", "5Years", "-5s", "10", "1alltime"} {
		t.Run(input, func(t *testing.T) {
			interval, err := every.ParseInterval(input)
			assert.ErrorIs(t, err, every.ErrUnknownTimeUnit)
			assert.Equal(t, interval, every.Interval{})
		})
	}
}

func TestParseIntervalIllegalCount(t *testing.T) {
	for _, input := range []string{"s", "0s", "99999999999999999999999days"} {
		t.Run(input, func(t *testing.T) {
			_, err := every.ParseInterval(input)
			assert.ErrorIs(t, err, every.ErrIllegalArgument)
		})
	}
}

func TestNewInterval(t *testing.T) {
	_, err := every.NewInterval(0, every.Day)
	assert.ErrorIs(t, err, every.ErrIllegalArgument)

	_, err = every.NewInterval(1, every.AllTime)
	assert.ErrorIs(t, err, every.ErrIllegalArgument)

	interval, err := every.NewInterval(3, every.Week)
	assert.IsNil(t, err)
	assert.Equal(t, interval.String(), "3week")
}

func TestIntervalAddTo(t *testing.T) {
	base := time.Date(2024, time.January, 31, 10, 15, 30, 0, time.UTC)
	tests := []struct {
		interval every.Interval
		expected time.Time
	}{
		{every.Interval{Value: 90, Unit: every.Second},
			time.Date(2024, time.January, 31, 10, 17, 0, 0, time.UTC)},
		{every.Interval{Value: 45, Unit: every.Minute},
			time.Date(2024, time.January, 31, 11, 0, 30, 0, time.UTC)},
		{every.Interval{Value: 14, Unit: every.Hour},
			time.Date(2024, time.February, 1, 0, 15, 30, 0, time.UTC)},
		{every.Interval{Value: 1, Unit: every.Day},
			time.Date(2024, time.February, 1, 10, 15, 30, 0, time.UTC)},
		{every.Interval{Value: 2, Unit: every.Week},
			time.Date(2024, time.February, 14, 10, 15, 30, 0, time.UTC)},
		{every.Interval{Value: 1, Unit: every.Month},
			time.Date(2024, time.February, 29, 10, 15, 30, 0, time.UTC)},
		{every.Interval{Value: 13, Unit: every.Month},
			time.Date(2025, time.February, 28, 10, 15, 30, 0, time.UTC)},
		{every.Interval{Value: 5, Unit: every.Year},
			time.Date(2029, time.January, 31, 10, 15, 30, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.interval.String(), func(t *testing.T) {
			assert.Equal(t, tt.interval.AddTo(base), tt.expected)
		})
	}
}

func TestIntervalAddToLeapDay(t *testing.T) {
	leap := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	interval := every.Interval{Value: 1, Unit: every.Year}
	assert.Equal(t, interval.AddTo(leap), time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC))

	interval = every.Interval{Value: 4, Unit: every.Year}
	assert.Equal(t, interval.AddTo(leap), time.Date(2028, time.February, 29, 0, 0, 0, 0, time.UTC))
}

func TestIntervalAddToDaylightSaving(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	assert.IsNil(t, err)

	// clocks move forward at 2024-03-31 02:00
	base := time.Date(2024, time.March, 30, 12, 0, 0, 0, berlin)
	day := every.Interval{Value: 1, Unit: every.Day}
	assert.Equal(t, day.AddTo(base), time.Date(2024, time.March, 31, 12, 0, 0, 0, berlin))

	hours := every.Interval{Value: 24, Unit: every.Hour}
	assert.Equal(t, hours.AddTo(base), time.Date(2024, time.March, 31, 13, 0, 0, 0, berlin))
}

func TestIntervalAddToLargeCount(t *testing.T) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	interval := every.Interval{Value: 1000, Unit: every.Year}
	assert.Equal(t, interval.AddTo(base), time.Date(3024, time.January, 1, 0, 0, 0, 0, time.UTC))

	// exceeds the range of time.Duration
	seconds := every.Interval{Value: 400 * 365 * 24 * 3600, Unit: every.Second}
	assert.Equal(t, seconds.AddTo(base).Year() > 2400, true)
}

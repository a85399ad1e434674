package every_test

import (
	"testing"

	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/internal/assert"
)

func TestPrevious(t *testing.T) {
	tests := []struct {
		unit     every.TimeUnit
		expected every.TimeUnit
	}{
		{every.AllTime, every.Year},
		{every.Year, every.Month},
		{every.Month, every.Week},
		{every.Week, every.Day},
		{every.Day, every.Hour},
		{every.Hour, every.Minute},
		{every.Minute, every.Second},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			prev, err := every.Previous(tt.unit)
			assert.IsNil(t, err)
			assert.Equal(t, prev, tt.expected)
		})
	}
}

func TestPreviousSecond(t *testing.T) {
	_, err := every.Previous(every.Second)
	assert.ErrorIs(t, err, every.ErrIllegalArgument)

	_, err = every.Previous(every.TimeUnit(42))
	assert.ErrorIs(t, err, every.ErrIllegalArgument)
}

func TestParseTimeUnit(t *testing.T) {
	tests := map[string]every.TimeUnit{
		"s":       every.Second,
		"seconds": every.Second,
		"min":     every.Minute,
		"hours":   every.Hour,
		"d":       every.Day,
		"w":       every.Week,
		"m":       every.Month,
		"months":  every.Month,
		"a":       every.Year,
		"year":    every.Year,
		"alltime": every.AllTime,
	}
	for alias, expected := range tests {
		unit, err := every.ParseTimeUnit(alias)
		assert.IsNil(t, err)
		assert.Equal(t, unit, expected)
	}

	for _, alias := range []string{"", "M", "Minute", "mins", "hr"} {
		_, err := every.ParseTimeUnit(alias)
		assert.ErrorIs(t, err, every.ErrUnknownTimeUnit)
	}
}

func TestTimeUnitString(t *testing.T) {
	assert.Equal(t, every.Week.String(), "week")
	assert.Equal(t, every.AllTime.String(), "alltime")
	assert.Equal(t, every.TimeUnit(-1).String(), "TimeUnit(-1)")
}

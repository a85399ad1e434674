package every

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reugn/go-every/internal/assert"
)

func TestIllegalArgumentError(t *testing.T) {
	message := "interval must be positive"
	err := illegalArgumentError(message)
	if !errors.Is(err, ErrIllegalArgument) {
		t.Fatal("error must match ErrIllegalArgument")
	}
	assert.Equal(t, err.Error(), fmt.Sprintf("%s: %s", ErrIllegalArgument, message))
}

func TestUnknownTimeUnitError(t *testing.T) {
	err := unknownTimeUnitError("xyz")
	if !errors.Is(err, ErrUnknownTimeUnit) {
		t.Fatal("error must match ErrUnknownTimeUnit")
	}
	assert.Equal(t, err.Error(), "unknown time unit: 'xyz'")
}

func TestCronParseError(t *testing.T) {
	message := "invalid field"
	err := cronParseError(message)
	if !errors.Is(err, ErrCronParse) {
		t.Fatal("error must match ErrCronParse")
	}
	assert.Equal(t, err.Error(), fmt.Sprintf("%s: %s", ErrCronParse, message))
}

func TestScheduleNotFoundError(t *testing.T) {
	message := "heartbeat"
	err := scheduleNotFoundError(message)
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Fatal("error must match ErrScheduleNotFound")
	}
	assert.Equal(t, err.Error(), fmt.Sprintf("%s: %s", ErrScheduleNotFound, message))
}

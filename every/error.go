package every

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrIllegalArgument  = errors.New("illegal argument")
	ErrUnknownTimeUnit  = errors.New("unknown time unit")
	ErrCronParse        = errors.New("parse cron expression")
	ErrTriggerExpired   = errors.New("trigger expired")
	ErrScheduleNotFound = errors.New("schedule not found")
)

// illegalArgumentError returns an illegal argument error with a custom
// error message, which unwraps to ErrIllegalArgument.
func illegalArgumentError(message string) error {
	return fmt.Errorf("%w: %s", ErrIllegalArgument, message)
}

// unknownTimeUnitError returns an error naming the offending unit token,
// which unwraps to ErrUnknownTimeUnit.
func unknownTimeUnitError(token string) error {
	return fmt.Errorf("%w: '%s'", ErrUnknownTimeUnit, token)
}

// cronParseError returns a cron parse error with a custom error message,
// which unwraps to ErrCronParse.
func cronParseError(message string) error {
	return fmt.Errorf("%w: %s", ErrCronParse, message)
}

// scheduleNotFoundError returns a schedule not found error with a custom
// error message, which unwraps to ErrScheduleNotFound.
func scheduleNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrScheduleNotFound, message)
}

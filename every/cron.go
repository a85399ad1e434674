package every

import (
	"fmt"
	"time"

	"github.com/gorhill/cronexpr"
)

// CronTrigger fires at the times matched by a cron expression.
// The expression syntax is that of github.com/gorhill/cronexpr: five
// to seven fields, where the optional leading field is seconds and the
// optional trailing field is the year, plus the @yearly, @monthly,
// @weekly, @daily and @hourly shorthands.
type CronTrigger struct {
	expression string
	cron       *cronexpr.Expression
	location   *time.Location
}

// Verify CronTrigger satisfies the Trigger interface.
var _ Trigger = (*CronTrigger)(nil)

// NewCronTrigger returns a new CronTrigger evaluated in the local time zone.
func NewCronTrigger(expression string) (*CronTrigger, error) {
	return NewCronTriggerWithLoc(expression, time.Local)
}

// NewCronTriggerWithLoc returns a new CronTrigger evaluated in the given
// time zone.
func NewCronTriggerWithLoc(expression string, location *time.Location) (*CronTrigger, error) {
	if location == nil {
		return nil, illegalArgumentError("location is nil")
	}
	cron, err := cronexpr.Parse(expression)
	if err != nil {
		return nil, cronParseError(err.Error())
	}
	return &CronTrigger{
		expression: expression,
		cron:       cron,
		location:   location,
	}, nil
}

// NextFireTime returns the first time matching the expression after now.
func (ct *CronTrigger) NextFireTime(now time.Time) (time.Time, error) {
	next := ct.cron.Next(now.In(ct.location))
	if next.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no fire time after %s for '%s'",
			ErrTriggerExpired, now.Format(time.RFC3339), ct.expression)
	}
	return next, nil
}

// Description returns the description of the trigger.
func (ct *CronTrigger) Description() string {
	return fmt.Sprintf("CronTrigger%s%s%s%s", separator, ct.expression, separator, ct.location)
}

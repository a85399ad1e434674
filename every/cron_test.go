package every_test

import (
	"testing"
	"time"

	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/internal/assert"
)

func TestCronTrigger(t *testing.T) {
	trigger, err := every.NewCronTriggerWithLoc("30 5 * * *", time.UTC)
	assert.IsNil(t, err)

	next, err := trigger.NextFireTime(date(2024, time.May, 15, 13, 0, 0, 0))
	assert.IsNil(t, err)
	assert.Equal(t, next, date(2024, time.May, 16, 5, 30, 0, 0))

	next, err = trigger.NextFireTime(next)
	assert.IsNil(t, err)
	assert.Equal(t, next, date(2024, time.May, 17, 5, 30, 0, 0))

	assert.Equal(t, trigger.Description(), "CronTrigger::30 5 * * *::UTC")
}

func TestCronTriggerSeconds(t *testing.T) {
	trigger, err := every.NewCronTriggerWithLoc("10 * * * * * *", time.UTC)
	assert.IsNil(t, err)

	next, err := trigger.NextFireTime(date(2024, time.May, 15, 13, 0, 45, 0))
	assert.IsNil(t, err)
	assert.Equal(t, next, date(2024, time.May, 15, 13, 1, 10, 0))
}

func TestCronTriggerExpired(t *testing.T) {
	trigger, err := every.NewCronTriggerWithLoc("0 0 0 1 1 * 2020", time.UTC)
	assert.IsNil(t, err)

	_, err = trigger.NextFireTime(date(2024, time.May, 15, 13, 0, 0, 0))
	assert.ErrorIs(t, err, every.ErrTriggerExpired)
}

func TestCronTriggerInvalid(t *testing.T) {
	_, err := every.NewCronTrigger("every tuesday")
	assert.ErrorIs(t, err, every.ErrCronParse)

	_, err = every.NewCronTriggerWithLoc("* * * * *", nil)
	assert.ErrorIs(t, err, every.ErrIllegalArgument)
}

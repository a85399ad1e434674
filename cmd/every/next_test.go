package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/internal/assert"
)

func TestNextCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"next", "2w", "--align", "day=1,hour=0", "--count", "3",
		"--from", "2024-05-15T10:30:00Z", "--location", "UTC"})
	assert.IsNil(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, lines, []string{
		"IntervalTrigger::2week::aligned(day=1 hour=0 minute=0 second=0 millisecond=0)",
		"Mon 2024-05-27 00:00:00.000 UTC  Monday",
		"Mon 2024-06-10 00:00:00.000 UTC  Monday",
		"Mon 2024-06-24 00:00:00.000 UTC  Monday",
	})
}

func TestNextCommandUnknownUnit(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"next", "7xyz"})
	assert.ErrorIs(t, rootCmd.Execute(), every.ErrUnknownTimeUnit)
}

func TestParseAlignment(t *testing.T) {
	alignment, err := parseAlignment("none")
	assert.IsNil(t, err)
	assert.Equal(t, alignment.Enabled(), false)

	alignment, err = parseAlignment("default")
	assert.IsNil(t, err)
	assert.Equal(t, alignment.Fields(), every.DefaultAlignment().Fields())

	alignment, err = parseAlignment("hour=5, minute=30")
	assert.IsNil(t, err)
	assert.Equal(t, alignment.String(), "hour=5 minute=30 second=0 millisecond=0")

	for _, input := range []string{"hour", "hour=x", "week=1"} {
		if _, err := parseAlignment(input); err == nil {
			t.Fatalf("expected an error for %q", input)
		}
	}
}

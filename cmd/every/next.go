package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reugn/go-every/config"
	"github.com/reugn/go-every/every"
)

var (
	nextAlign     string
	nextCount     int
	nextFrom      string
	nextLocation  string
	nextWeekStart string
)

var nextCmd = &cobra.Command{
	Use:   "next <interval>",
	Short: "Print the upcoming fire times of an interval",
	Long: `Print the upcoming fire times of an interval such as "10s", "1day" or
"2weeks". Each fire time is computed from the previous one, as a running
schedule would.

Examples:
  # every day at 5:30
  every next 1day --align hour=5,minute=30

  # every 2 weeks on Monday at midnight
  every next 2w --align day=1,hour=0 --count 4

  # every minute, without alignment
  every next 1min --align none`,
	Args: cobra.ExactArgs(1),
	RunE: printNext,
}

func init() {
	nextCmd.Flags().StringVarP(&nextAlign, "align", "a", "default",
		`Alignment fields "field=value,...", "default" or "none"`)
	nextCmd.Flags().IntVarP(&nextCount, "count", "n", 5, "Number of fire times to print")
	nextCmd.Flags().StringVar(&nextFrom, "from", "", "Start time in RFC 3339 format (default now)")
	nextCmd.Flags().StringVar(&nextLocation, "location", "Local", "IANA time zone")
	nextCmd.Flags().StringVar(&nextWeekStart, "week-start", "monday", "Weekday numbered 1 in weekly alignments")
}

func printNext(cmd *cobra.Command, args []string) error {
	interval, err := every.ParseInterval(args[0])
	if err != nil {
		return err
	}
	alignment, err := parseAlignment(nextAlign)
	if err != nil {
		return err
	}
	location, err := time.LoadLocation(nextLocation)
	if err != nil {
		return fmt.Errorf("invalid location %q: %w", nextLocation, err)
	}
	weekStart, err := config.ParseWeekday(nextWeekStart)
	if err != nil {
		return err
	}

	now := time.Now()
	if nextFrom != "" {
		if now, err = time.Parse(time.RFC3339, nextFrom); err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
	}

	trigger := every.NewIntervalTrigger(interval, alignment)
	trigger.Location = location
	trigger.WeekStart = weekStart
	fmt.Fprintln(cmd.OutOrStdout(), trigger.Description())
	for i := 0; i < nextCount; i++ {
		if now, err = trigger.NextFireTime(now); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", now.Format("Mon 2006-01-02 15:04:05.000 MST"),
			now.Weekday())
	}
	return nil
}

// parseAlignment parses "hour=5,minute=30", "default" or "none".
func parseAlignment(s string) (every.Alignment, error) {
	switch strings.TrimSpace(s) {
	case "default", "":
		return every.DefaultAlignment(), nil
	case "none", "false":
		return every.NoAlignment(), nil
	}

	var fields every.Fields
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return every.Alignment{}, fmt.Errorf("invalid alignment %q", pair)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return every.Alignment{}, fmt.Errorf("alignment field %s: %w", key, err)
		}
		if err := fields.Set(strings.TrimSpace(key), n); err != nil {
			return every.Alignment{}, err
		}
	}
	return every.Align(fields), nil
}

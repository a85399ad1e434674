// Package config loads declarative schedule definitions from YAML files.
//
// A configuration file looks like:
//
//	log_level: debug
//	location: Europe/Berlin
//	week_start: monday
//	schedules:
//	  - name: heartbeat
//	    every: 10s
//	  - name: report
//	    every: 1day
//	    align: { hour: 5, minute: 30 }
//	  - name: nightly
//	    cron: "0 2 * * *"
//	  - name: drift-free
//	    every: 1minute
//	    align: false
//	  - name: backup
//	    every: 6hour
//	    command: "tar czf /tmp/backup.tgz /var/lib/app"
//	  - name: ping
//	    every: 30s
//	    url: http://localhost:8080/health
//
// An omitted align uses the default alignment, false disables alignment and
// a mapping aligns the given fields. A schedule may run a shell command or
// send a GET request to a URL on every firing, but not both.
package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/reugn/go-every/action"
	"github.com/reugn/go-every/every"
	"github.com/reugn/go-every/logger"
)

// Validation errors returned by Load.
var (
	ErrNameRequired     = errors.New("schedule name is required")
	ErrDuplicateName    = errors.New("duplicate schedule name")
	ErrScheduleRequired = errors.New("exactly one of every or cron is required")
	ErrInvalidAlignment = errors.New("invalid alignment")
	ErrActionConflict   = errors.New("at most one of command or url is allowed")
	ErrInvalidURL       = errors.New("invalid url")
)

// Config holds the schedule definitions of a configuration file.
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error or off.
	// Default: info.
	LogLevel string `koanf:"log_level"`

	// Location is the IANA time zone for calendar arithmetic.
	// Default: Local.
	Location string `koanf:"location"`

	// WeekStart is the weekday numbered 1 in weekly alignments.
	// Default: monday.
	WeekStart string `koanf:"week_start"`

	Schedules []Schedule `koanf:"schedules"`

	level     logger.Level
	location  *time.Location
	weekStart time.Weekday
}

// Schedule defines a single named schedule.
type Schedule struct {
	Name string `koanf:"name"`

	// Every is an interval such as "5min" or "1day".
	Every string `koanf:"every"`

	// Cron is a cron expression, used instead of Every.
	Cron string `koanf:"cron"`

	// Align is nil, false or a mapping of alignment fields.
	Align any `koanf:"align"`

	// Command is a shell command run on every firing.
	Command string `koanf:"command"`

	// URL receives a GET request on every firing.
	URL string `koanf:"url"`
}

// Entry is a named schedule built from a configuration.
type Entry struct {
	Name     string
	Schedule *every.Schedule
}

// Load reads configuration from the specified YAML file path.
// It applies defaults for optional fields and validates every schedule.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Location == "" {
		c.Location = "Local"
	}
	if c.WeekStart == "" {
		c.WeekStart = "monday"
	}
}

func (c *Config) validate() error {
	var err error
	if c.level, err = logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.location, err = time.LoadLocation(c.Location); err != nil {
		return fmt.Errorf("invalid location %q: %w", c.Location, err)
	}
	if c.weekStart, err = ParseWeekday(c.WeekStart); err != nil {
		return err
	}

	names := make(map[string]struct{}, len(c.Schedules))
	for i, s := range c.Schedules {
		if s.Name == "" {
			return fmt.Errorf("schedules[%d]: %w", i, ErrNameRequired)
		}
		if _, ok := names[s.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateName, s.Name)
		}
		names[s.Name] = struct{}{}

		if (s.Every == "") == (s.Cron == "") {
			return fmt.Errorf("schedule %s: %w", s.Name, ErrScheduleRequired)
		}
		if s.Every != "" {
			if _, err := every.ParseInterval(s.Every); err != nil {
				return fmt.Errorf("schedule %s: %w", s.Name, err)
			}
		}
		if _, err := s.alignment(); err != nil {
			return fmt.Errorf("schedule %s: %w", s.Name, err)
		}
		if s.Command != "" && s.URL != "" {
			return fmt.Errorf("schedule %s: %w", s.Name, ErrActionConflict)
		}
		if s.URL != "" {
			if u, err := url.Parse(s.URL); err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("schedule %s: %w: %s", s.Name, ErrInvalidURL, s.URL)
			}
		}
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logger.Level {
	return c.level
}

// Loc returns the loaded time zone.
func (c *Config) Loc() *time.Location {
	return c.location
}

// Build creates an idle schedule for every definition, in file order.
// The options are applied after the configured location and week start.
func (c *Config) Build(opts ...every.Option) ([]Entry, error) {
	entries := make([]Entry, 0, len(c.Schedules))
	for _, s := range c.Schedules {
		schedule, err := c.build(s, opts)
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", s.Name, err)
		}
		entries = append(entries, Entry{Name: s.Name, Schedule: schedule})
	}
	return entries, nil
}

func (c *Config) build(s Schedule, opts []every.Option) (*every.Schedule, error) {
	base := []every.Option{every.WithLocation(c.location), every.WithWeekStart(c.weekStart)}

	if s.Cron != "" {
		trigger, err := every.NewCronTriggerWithLoc(s.Cron, c.location)
		if err != nil {
			return nil, err
		}
		base = append(base, every.WithTrigger(trigger))
		return every.New(append(base, opts...)...)
	}

	interval, err := every.ParseInterval(s.Every)
	if err != nil {
		return nil, err
	}
	alignment, err := s.alignment()
	if err != nil {
		return nil, err
	}
	base = append(base, every.WithInterval(interval), every.WithAlignment(alignment))
	return every.New(append(base, opts...)...)
}

// Action returns the action declared by the schedule definition, or nil
// if it declares neither a command nor a URL.
func (s Schedule) Action(l logger.Logger) (every.Action, error) {
	switch {
	case s.Command != "":
		return action.NewShell(s.Command, l).Action(), nil
	case s.URL != "":
		request, err := http.NewRequest(http.MethodGet, s.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidURL, err)
		}
		return action.NewRequest(request, nil, l).Action(), nil
	}
	return nil, nil
}

// alignment interprets the align value of a schedule definition.
func (s Schedule) alignment() (every.Alignment, error) {
	switch align := s.Align.(type) {
	case nil:
		return every.DefaultAlignment(), nil
	case bool:
		if align {
			return every.DefaultAlignment(), nil
		}
		return every.NoAlignment(), nil
	case map[string]any:
		var fields every.Fields
		for key, value := range align {
			n, err := toInt(value)
			if err != nil {
				return every.Alignment{}, fmt.Errorf("%w: field %s: %s", ErrInvalidAlignment, key, err)
			}
			if err := fields.Set(key, n); err != nil {
				return every.Alignment{}, fmt.Errorf("%w: %s", ErrInvalidAlignment, err)
			}
		}
		return every.Align(fields), nil
	}
	return every.Alignment{}, fmt.Errorf("%w: unsupported value %v", ErrInvalidAlignment, s.Align)
}

func toInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("%v is not an integer", value)
}

// ParseWeekday parses an English weekday name, ignoring case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid week start %q", s)
}

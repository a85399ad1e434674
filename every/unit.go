package every

import "fmt"

// TimeUnit is a calendar unit of an Interval.
// Units are ordered from the finest to the coarsest.
type TimeUnit int

// Supported time units.
const (
	Second TimeUnit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year

	// AllTime is a virtual unit one level above Year. It is not a valid
	// Interval unit and exists for callers that walk the unit chain upwards.
	AllTime
)

// TimeUnits lists the units an Interval can be expressed in.
var TimeUnits = []TimeUnit{Second, Minute, Hour, Day, Week, Month, Year}

var unitNames = [...]string{
	Second:  "second",
	Minute:  "minute",
	Hour:    "hour",
	Day:     "day",
	Week:    "week",
	Month:   "month",
	Year:    "year",
	AllTime: "alltime",
}

// unitAliases maps the accepted spellings of each unit. Matching is
// case-sensitive: "m" is a month, "min" is a minute.
var unitAliases = map[string]TimeUnit{
	"second": Second, "seconds": Second, "s": Second,
	"minute": Minute, "minutes": Minute, "min": Minute,
	"hour": Hour, "hours": Hour, "h": Hour,
	"day": Day, "days": Day, "d": Day,
	"week": Week, "weeks": Week, "w": Week,
	"month": Month, "months": Month, "m": Month,
	"year": Year, "years": Year, "a": Year,
}

// String returns the canonical name of the unit.
func (u TimeUnit) String() string {
	if u.valid() || u == AllTime {
		return unitNames[u]
	}
	return fmt.Sprintf("TimeUnit(%d)", int(u))
}

func (u TimeUnit) valid() bool {
	return u >= Second && u <= Year
}

// ParseTimeUnit resolves a unit alias such as "min", "hours" or "a".
// The virtual "alltime" unit is accepted as well.
func ParseTimeUnit(alias string) (TimeUnit, error) {
	if unit, ok := unitAliases[alias]; ok {
		return unit, nil
	}
	if alias == unitNames[AllTime] {
		return AllTime, nil
	}
	return 0, unknownTimeUnitError(alias)
}

// Previous returns the next finer unit in the chain
// alltime → year → month → week → day → hour → minute → second.
// Second has no predecessor and yields ErrIllegalArgument.
func Previous(unit TimeUnit) (TimeUnit, error) {
	switch unit {
	case Minute, Hour, Day, Week, Month, Year, AllTime:
		return unit - 1, nil
	case Second:
		return 0, illegalArgumentError("second has no finer time unit")
	default:
		return 0, illegalArgumentError(fmt.Sprintf("invalid time unit %d", int(unit)))
	}
}

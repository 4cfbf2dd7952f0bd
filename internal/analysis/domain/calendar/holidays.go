package calendar

import "time"

// HolidayMode selects which holiday dates are handed to the scoring engine
// alongside the built-in regional list.
type HolidayMode string

const (
	// HolidayModeNone passes no caller holidays.
	HolidayModeNone HolidayMode = "none"
	// HolidayModeIndian passes the built-in Indian list only.
	HolidayModeIndian HolidayMode = "indian"
	// HolidayModeCustom passes the caller-supplied list only.
	HolidayModeCustom HolidayMode = "custom"
	// HolidayModeBoth passes the union of the built-in and caller lists.
	HolidayModeBoth HolidayMode = "both"
)

// builtinHolidays is the fixed Indian holiday list for 2025.
// TODO: extend with the 2026 dates once they are published.
var builtinHolidays = []time.Time{
	time.Date(2025, time.January, 14, 0, 0, 0, 0, time.UTC),  // Pongal
	time.Date(2025, time.January, 26, 0, 0, 0, 0, time.UTC),  // Republic Day
	time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC),   // Independence Day
	time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC),   // Gandhi Jayanthi
	time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC),  // Diwali (approx)
	time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC), // Christmas
}

// BuiltinHolidays returns the fixed regional holiday set.
func BuiltinHolidays() DateSet {
	return NewDateSet(builtinHolidays...)
}

// ResolveHolidays converts a holiday mode plus a caller-supplied list into the
// effective list of holiday date strings. Unknown modes behave like custom.
func ResolveHolidays(mode HolidayMode, custom []string) []string {
	switch mode {
	case HolidayModeNone:
		return nil
	case HolidayModeIndian:
		return BuiltinHolidays().SortedStrings()
	case HolidayModeBoth:
		return BuiltinHolidays().Union(ParseDates(custom)).SortedStrings()
	default:
		return custom
	}
}

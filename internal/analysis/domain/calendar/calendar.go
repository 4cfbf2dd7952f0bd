// Package calendar provides business-day arithmetic over a working calendar
// with configurable holidays. All dates are normalized to midnight UTC so that
// set membership and day stepping ignore any time-of-day component.
package calendar

import (
	"sort"
	"strings"
	"time"
)

const (
	// ISODate is the strict date layout accepted first by ParseDate.
	ISODate = "2006-01-02"
	// dayFirstDate is the loose day-first fallback layout.
	dayFirstDate = "02-01-2006"
)

// ParseDate parses a date string, accepting strict ISO YYYY-MM-DD first and
// falling back to DD-MM-YYYY. It reports false for anything else instead of
// returning an error; absent dates are a normal condition for callers.
func ParseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(ISODate, s); err == nil {
		return d, true
	}
	if d, err := time.Parse(dayFirstDate, s); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// Midnight truncates a time to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateSet is a set of calendar dates keyed by midnight UTC.
type DateSet map[time.Time]struct{}

// NewDateSet builds a set from the given dates.
func NewDateSet(days ...time.Time) DateSet {
	s := make(DateSet, len(days))
	for _, d := range days {
		s.Add(d)
	}
	return s
}

// ParseDates builds a set from date strings, silently dropping entries that
// ParseDate does not recognize.
func ParseDates(raw []string) DateSet {
	s := make(DateSet, len(raw))
	for _, v := range raw {
		if d, ok := ParseDate(v); ok {
			s.Add(d)
		}
	}
	return s
}

// Add inserts a date into the set.
func (s DateSet) Add(d time.Time) {
	s[Midnight(d)] = struct{}{}
}

// Contains reports whether the set holds the date.
func (s DateSet) Contains(d time.Time) bool {
	_, ok := s[Midnight(d)]
	return ok
}

// Union returns a new set holding the dates of both sets.
func (s DateSet) Union(other DateSet) DateSet {
	out := make(DateSet, len(s)+len(other))
	for d := range s {
		out[d] = struct{}{}
	}
	for d := range other {
		out[d] = struct{}{}
	}
	return out
}

// SortedStrings returns the dates as sorted ISO strings.
func (s DateSet) SortedStrings() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d.Format(ISODate))
	}
	sort.Strings(out)
	return out
}

// BusinessDaysBetween counts business days from start (exclusive) to end
// (inclusive), stepping one calendar day at a time toward end. A day counts
// only if it is neither a weekend day nor in holidays. The count is signed:
// positive when end is after start, negative when end precedes start (the
// magnitude is the number of business days elapsed since end), and zero when
// the dates are equal.
func BusinessDaysBetween(start, end time.Time, holidays DateSet) int {
	start, end = Midnight(start), Midnight(end)
	if start.Equal(end) {
		return 0
	}

	step := 1
	if end.Before(start) {
		step = -1
	}

	count := 0
	for cur := start.AddDate(0, 0, step); ; cur = cur.AddDate(0, 0, step) {
		if step > 0 && cur.After(end) {
			break
		}
		if step < 0 && cur.Before(end) {
			break
		}
		if !IsWeekend(cur) && !holidays.Contains(cur) {
			count += step
		}
	}
	return count
}

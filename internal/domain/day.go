package domain

import (
	"fmt"
	"time"
)

// DayLayout is the wire and storage format of a calendar day.
const DayLayout = "2006-01-02"

// Day is a calendar day with no time component, formatted as YYYY-MM-DD.
// Lexical order of well-formed days is chronological order.
type Day string

// ParseDay validates s and returns it as a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid day %q: %w", s, err)
	}
	return Day(t.Format(DayLayout)), nil
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// Time returns midnight UTC of the day. Malformed days yield the zero time.
func (d Day) Time() time.Time {
	t, _ := time.Parse(DayLayout, string(d))
	return t
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d < other
}

func (d Day) String() string {
	return string(d)
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// DaysBetween returns the number of whole days from a to b; negative when b
// is before a.
func DaysBetween(a, b Day) int {
	return int(b.Time().Sub(a.Time()).Hours() / 24)
}

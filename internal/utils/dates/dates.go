package dates

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar-date format used for simple dates.
	DateLayout = "2006-01-02"
	// MonthLayout is the format of month keys such as payroll periods.
	MonthLayout = "2006-01"
)

// Truncate drops the clock part of t and returns midnight UTC of the same calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return Truncate(t).AddDate(0, 0, n)
}

// DaysBetween returns the number of whole calendar days from -> to (negative when to is earlier).
func DaysBetween(from, to time.Time) int {
	return int(Truncate(to).Sub(Truncate(from)).Hours() / 24)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Truncate(a).Equal(Truncate(b))
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(MonthLayout)
}

// InMonth reports whether t falls in the month identified by key (YYYY-MM).
func InMonth(t time.Time, key string) bool {
	return MonthKey(t) == key
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// ParseMonth validates a YYYY-MM key and returns the first day of that month.
func ParseMonth(key string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", key, err)
	}
	return t, nil
}

// PeriodCount is the number of bi-monthly ranking periods in a year.
const PeriodCount = 6

// PeriodMonths returns the two months of bi-monthly period p (1 = Jan-Feb ... 6 = Nov-Dec).
func PeriodMonths(p int) (time.Month, time.Month, error) {
	if p < 1 || p > PeriodCount {
		return 0, 0, fmt.Errorf("invalid period %d, expected 1..%d", p, PeriodCount)
	}
	first := time.Month(2*p - 1)
	return first, first + 1, nil
}

// PeriodOf returns the bi-monthly period containing month m.
func PeriodOf(m time.Month) int {
	return (int(m) + 1) / 2
}

// PeriodLabel renders period p as e.g. "Jan - Feb".
func PeriodLabel(p int) string {
	first, second, err := PeriodMonths(p)
	if err != nil {
		return ""
	}
	return first.String()[:3] + " - " + second.String()[:3]
}

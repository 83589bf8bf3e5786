package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfMonth returns the first day of the month for the given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// NextMonth returns the first day of the month following the given date
func NextMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, 0)
}

// StartOfWeek returns the most recent day on or before date whose weekday
// equals weekStart
func StartOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	d := StartOfDay(date)
	for d.Weekday() != weekStart {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		"2006-01-02",
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date: %q", dateStr)
}

// ParseWeekday parses a weekday name, full ("Monday") or abbreviated ("Mon"),
// case-insensitively
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := d.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", name)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}

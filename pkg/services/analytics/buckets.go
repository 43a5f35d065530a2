package analytics

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidDate marks a date string that does not parse as a
	// calendar day.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrInvalidRange marks an inverted explicit range.
	ErrInvalidRange = errors.New("date_from must be before date_to")
)

const (
	DefaultWindowMonths = 12
	minWindowMonths     = 1
	maxWindowMonths     = 36

	dayLayout   = "2006-01-02"
	monthLayout = "Jan 2006"
)

// ParseDay parses an ISO calendar date.
func ParseDay(value string) (time.Time, error) {
	t, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// MonthStart truncates a date to the first of its month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthLabel renders a bucket key as "Jan 2006".
func MonthLabel(t time.Time) string {
	return t.Format(monthLayout)
}

// MonthRange returns the ordered first-of-month sequence covering both
// endpoints inclusive.
func MonthRange(start, end time.Time) ([]time.Time, error) {
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	current := MonthStart(start)
	last := MonthStart(end)

	var months []time.Time
	for !current.After(last) {
		months = append(months, current)
		current = current.AddDate(0, 1, 0)
	}
	return months, nil
}

// RollingWindow returns the `months` most recent first-of-month dates
// ending at now's month, oldest first. The window is clamped to
// [1, 36]; AddDate on a day-one date rolls year boundaries correctly in
// both directions.
func RollingWindow(months int, now time.Time) []time.Time {
	months = ClampWindow(months)
	base := MonthStart(now)

	buckets := make([]time.Time, 0, months)
	for offset := months - 1; offset >= 0; offset-- {
		buckets = append(buckets, base.AddDate(0, -offset, 0))
	}
	return buckets
}

func ClampWindow(months int) int {
	if months < minWindowMonths {
		return minWindowMonths
	}
	if months > maxWindowMonths {
		return maxWindowMonths
	}
	return months
}

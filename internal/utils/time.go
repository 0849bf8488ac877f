package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/coparent/internal/constants"
)

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM string into the first of that month, UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(constants.MonthFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return t, nil
}

// FormatDate renders the calendar date of t as YYYY-MM-DD, in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DateOnly drops the clock and location from t, keeping its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in the local timezone.
func Today() time.Time {
	return DateOnly(time.Now())
}

// MonthBounds returns the first and last day of the given month.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

// StartOfWeek returns the closest date on or before t that falls on weekStart.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	t = DateOnly(t)
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return t.AddDate(0, 0, -offset)
}

// EndOfWeek returns the last date of the week containing t.
func EndOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	return StartOfWeek(t, weekStart).AddDate(0, 0, 6)
}

// ParseWeekday accepts full or three-letter English names, or 0-6 (0=Sunday).
func ParseWeekday(s string) (time.Weekday, error) {
	dayMap := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}

	key := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := dayMap[key]; ok {
		return wd, nil
	}
	if num, err := strconv.Atoi(key); err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %s", s)
}

// Gregorian is the default calendar used to walk dates. Iteration happens on
// UTC calendar dates so daylight-saving transitions never skip or repeat a day.
type Gregorian struct{}

func (Gregorian) Weekday(date time.Time) time.Weekday {
	return DateOnly(date).Weekday()
}

// Days returns every calendar date in [start, end], ascending. An inverted
// range yields nil.
func (Gregorian) Days(start, end time.Time) []time.Time {
	start, end = DateOnly(start), DateOnly(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays lists the pattern keys Monday first, the order used for display.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeeklyPattern is the recurring custody assignment, one DaySlots per weekday.
// A complete pattern has all seven days; there is no fallback day.
type WeeklyPattern map[time.Weekday]DaySlots

// Clone returns an independent copy of p.
func (p WeeklyPattern) Clone() WeeklyPattern {
	out := make(WeeklyPattern, len(p))
	for wd, slots := range p {
		out[wd] = slots
	}
	return out
}

// MissingWeekdays returns the weekdays with no entry, Monday first.
func (p WeeklyPattern) MissingWeekdays() []time.Weekday {
	var missing []time.Weekday
	for _, wd := range Weekdays {
		if _, ok := p[wd]; !ok {
			missing = append(missing, wd)
		}
	}
	return missing
}

// Validate rejects incomplete patterns and invalid slot values.
func (p WeeklyPattern) Validate() error {
	if missing := p.MissingWeekdays(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, wd := range missing {
			names[i] = wd.String()
		}
		return fmt.Errorf("weekly pattern is missing %s", strings.Join(names, ", "))
	}
	for _, wd := range Weekdays {
		if err := p[wd].Validate(); err != nil {
			return fmt.Errorf("weekly pattern %s: %w", wd, err)
		}
	}
	return nil
}

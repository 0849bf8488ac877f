// Package schedule resolves which guardian has custody on a given day by
// combining the recurring weekly pattern with date-specific exceptions.
//
// Precedence is fixed: an exception whose date equals the target date replaces
// the weekly pattern for all four segments of that day. Otherwise the day's
// weekday entry is returned verbatim. There is no fallback guardian; a pattern
// missing the weekday is a ConfigurationError.
package schedule

import (
	"fmt"
	"time"

	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/utils"
)

// Calendar supplies weekday lookup and day iteration.
type Calendar interface {
	Weekday(date time.Time) time.Weekday
	Days(start, end time.Time) []time.Time
}

// ConfigurationError reports a weekly pattern without an entry for a weekday
// that resolution needed. It fails only the call that hit it.
type ConfigurationError struct {
	Weekday time.Weekday
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("weekly pattern has no entry for %s", e.Weekday)
}

// DayAssignment is the resolved custody for one calendar date.
type DayAssignment struct {
	Date  time.Time
	Slots models.DaySlots
	// ExceptionID is set when the slots came from an exception.
	ExceptionID string
	Reason      string
}

// Overridden reports whether an exception produced this assignment.
func (a DayAssignment) Overridden() bool {
	return a.ExceptionID != ""
}

// Resolver holds no state besides its calendar and is safe for concurrent use.
type Resolver struct {
	cal Calendar
}

// New returns a Resolver using cal, or the Gregorian calendar when cal is nil.
func New(cal Calendar) *Resolver {
	if cal == nil {
		cal = utils.Gregorian{}
	}
	return &Resolver{cal: cal}
}

// ResolveDay returns the custody slots for date.
func (r *Resolver) ResolveDay(date time.Time, pattern models.WeeklyPattern, exceptions []models.Exception) (models.DaySlots, error) {
	a, err := r.ResolveAssignment(date, pattern, exceptions)
	if err != nil {
		return models.DaySlots{}, err
	}
	return a.Slots, nil
}

// ResolveAssignment is ResolveDay keeping the overriding exception's id and
// reason.
func (r *Resolver) ResolveAssignment(date time.Time, pattern models.WeeklyPattern, exceptions []models.Exception) (DayAssignment, error) {
	return r.resolve(date, pattern, indexExceptions(exceptions))
}

// ResolveRange resolves every day in [start, end] inclusive, ascending. The
// result depends only on the inputs, so repeated calls yield identical output.
func (r *Resolver) ResolveRange(start, end time.Time, pattern models.WeeklyPattern, exceptions []models.Exception) ([]DayAssignment, error) {
	days := r.cal.Days(start, end)
	index := indexExceptions(exceptions)

	out := make([]DayAssignment, 0, len(days))
	for _, day := range days {
		a, err := r.resolve(day, pattern, index)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *Resolver) resolve(date time.Time, pattern models.WeeklyPattern, index map[string]models.Exception) (DayAssignment, error) {
	a := DayAssignment{Date: utils.DateOnly(date)}

	if exc, ok := index[utils.FormatDate(date)]; ok {
		a.Slots = exc.Slots
		a.ExceptionID = exc.ID
		a.Reason = exc.Reason
		return a, nil
	}

	wd := r.cal.Weekday(date)
	slots, ok := pattern[wd]
	if !ok {
		return DayAssignment{}, &ConfigurationError{Weekday: wd}
	}
	a.Slots = slots
	return a, nil
}

// indexExceptions keys exceptions by date. Dates are unique in a valid
// household; if a caller passes duplicates the first one wins.
func indexExceptions(exceptions []models.Exception) map[string]models.Exception {
	index := make(map[string]models.Exception, len(exceptions))
	for _, exc := range exceptions {
		if _, seen := index[exc.Date]; !seen {
			index[exc.Date] = exc
		}
	}
	return index
}

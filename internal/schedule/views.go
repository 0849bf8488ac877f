package schedule

import (
	"time"

	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/utils"
)

// RepresentativeSegment is the segment used whenever a whole day has to be
// summarized by a single guardian (calendar cells, day counts). Every summary
// view goes through DayOwner so they all pick the same segment.
const RepresentativeSegment = models.SegmentMorning

// SlotOwner returns the guardian assigned to seg.
func SlotOwner(slots models.DaySlots, seg models.Segment) models.Guardian {
	return slots.Get(seg)
}

// DayOwner summarizes a day by its representative segment. The other three
// segments are discarded.
func DayOwner(slots models.DaySlots) models.Guardian {
	return SlotOwner(slots, RepresentativeSegment)
}

// MonthGrid returns the date range shown for a month calendar: padded back to
// the first weekStart on or before the 1st and forward to the end of the week
// containing the last day.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) (time.Time, time.Time) {
	first, last := utils.MonthBounds(year, month)
	return utils.StartOfWeek(first, weekStart), utils.EndOfWeek(last, weekStart)
}

// MonthSpan is one month's resolved days.
type MonthSpan struct {
	Month time.Month
	Days  []DayAssignment
}

// ResolveYear resolves each month of year through ResolveRange.
func (r *Resolver) ResolveYear(year int, pattern models.WeeklyPattern, exceptions []models.Exception) ([]MonthSpan, error) {
	spans := make([]MonthSpan, 0, 12)
	for m := time.January; m <= time.December; m++ {
		first, last := utils.MonthBounds(year, m)
		days, err := r.ResolveRange(first, last, pattern, exceptions)
		if err != nil {
			return nil, err
		}
		spans = append(spans, MonthSpan{Month: m, Days: days})
	}
	return spans, nil
}

// CustodyCount tallies representative-guardian days.
type CustodyCount struct {
	A          int
	B          int
	Overridden int
}

// Total is the number of days counted.
func (c CustodyCount) Total() int {
	return c.A + c.B
}

// Count tallies days by DayOwner. Days whose representative slot names neither
// guardian are skipped.
func Count(days []DayAssignment) CustodyCount {
	var c CustodyCount
	for _, d := range days {
		switch DayOwner(d.Slots) {
		case models.GuardianA:
			c.A++
		case models.GuardianB:
			c.B++
		default:
			continue
		}
		if d.Overridden() {
			c.Overridden++
		}
	}
	return c
}

package custody

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/tui/components/calendar"
	"github.com/julianstephens/coparent/internal/utils"
)

type ScheduleCmd struct {
	Show   ScheduleShowCmd   `cmd:"" help:"Show the weekly custody pattern." default:"1"`
	Set    ScheduleSetCmd    `cmd:"" help:"Set all segments of a weekday."`
	Toggle ScheduleToggleCmd `cmd:"" help:"Flip one segment of a weekday to the other parent."`
}

type ScheduleShowCmd struct{}

func (c *ScheduleShowCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}
	printPattern(ctx, h)
	return nil
}

func printPattern(ctx *cli.Context, h household.Household) {
	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "WEEKDAY")
	for _, seg := range models.Segments {
		fmt.Fprintf(w, "\t%s", calendar.SegmentLabel(seg))
	}
	fmt.Fprintln(w)

	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(h.Setup.WeekStart) + i) % 7)
		slots, ok := h.Pattern[wd]
		fmt.Fprint(w, wd)
		for _, seg := range models.Segments {
			name := "(unset)"
			if ok {
				name = h.Setup.Name(slots.Get(seg))
			}
			fmt.Fprintf(w, "\t%s", name)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

type ScheduleSetCmd struct {
	Weekday string `arg:"" help:"Weekday (mon, tuesday, 0-6)."`
	Slots   string `arg:"" help:"One parent for the whole day (A|B) or four letters in segment order (e.g. AABB)."`
}

func (c *ScheduleSetCmd) Run(ctx *cli.Context) error {
	wd, err := utils.ParseWeekday(c.Weekday)
	if err != nil {
		return err
	}
	slots, err := models.ParseDaySlots(c.Slots)
	if err != nil {
		return err
	}

	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.SetWeekday(wd, slots)
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ %s set to %s\n", wd, slots)
	printPattern(ctx, h)
	return nil
}

type ScheduleToggleCmd struct {
	Weekday string `arg:"" help:"Weekday (mon, tuesday, 0-6)."`
	Segment string `arg:"" help:"Segment (early_morning|morning|afternoon|night)."`
}

func (c *ScheduleToggleCmd) Run(ctx *cli.Context) error {
	wd, err := utils.ParseWeekday(c.Weekday)
	if err != nil {
		return err
	}
	seg, err := models.ParseSegment(c.Segment)
	if err != nil {
		return err
	}

	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.SetWeekdaySegment(wd, seg)
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ %s %s is now with %s\n", wd, calendar.SegmentLabel(seg), h.Setup.Name(h.Pattern[wd].Get(seg)))
	return nil
}

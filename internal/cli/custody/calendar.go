package custody

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/schedule"
	"github.com/julianstephens/coparent/internal/tui/components/calendar"
	"github.com/julianstephens/coparent/internal/utils"
)

type CalendarCmd struct {
	Month CalendarMonthCmd `cmd:"" help:"Show a month calendar." default:"1"`
	Year  CalendarYearCmd  `cmd:"" help:"Show day counts for every month of a year."`
	Day   CalendarDayCmd   `cmd:"" help:"Show all segments of one day."`
}

type CalendarMonthCmd struct {
	Month string `arg:"" optional:"" help:"Month (YYYY-MM). Defaults to the current month."`
}

func (c *CalendarMonthCmd) Run(ctx *cli.Context) error {
	target := ctx.Today()
	if c.Month != "" {
		m, err := utils.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		target = m
	}

	h, err := ctx.Household()
	if err != nil {
		return err
	}

	year, month := target.Year(), target.Month()
	start, end := schedule.MonthGrid(year, month, h.Setup.WeekStart)
	days, err := ctx.Resolver.ResolveRange(start, end, h.Pattern, h.Exceptions)
	if err != nil {
		return err
	}

	var selected time.Time
	if today := ctx.Today(); today.Year() == year && today.Month() == month {
		selected = today
	}
	ctx.Println(calendar.RenderMonth(days, h.Setup, year, month, selected))

	var inMonth []schedule.DayAssignment
	for _, d := range days {
		if d.Date.Month() == month {
			inMonth = append(inMonth, d)
		}
	}
	count := schedule.Count(inMonth)
	ctx.Printf("\n%s: %d days   %s: %d days   overrides: %d\n",
		h.Setup.ParentAName, count.A, h.Setup.ParentBName, count.B, count.Overridden)
	return nil
}

type CalendarYearCmd struct {
	Year int `arg:"" optional:"" help:"Year. Defaults to the current year."`
}

func (c *CalendarYearCmd) Run(ctx *cli.Context) error {
	year := c.Year
	if year == 0 {
		year = ctx.Today().Year()
	}

	h, err := ctx.Household()
	if err != nil {
		return err
	}

	months, err := ctx.Resolver.ResolveYear(year, h.Pattern, h.Exceptions)
	if err != nil {
		return err
	}

	ctx.Printf("%d\n\n", year)
	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "MONTH\t%s\t%s\tOVERRIDES\t\n", h.Setup.ParentAName, h.Setup.ParentBName)

	var total schedule.CustodyCount
	for _, span := range months {
		n := schedule.Count(span.Days)
		total.A += n.A
		total.B += n.B
		total.Overridden += n.Overridden
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t\n", span.Month, n.A, n.B, n.Overridden)
	}
	fmt.Fprintf(w, "Total\t%d\t%d\t%d\t\n", total.A, total.B, total.Overridden)
	if err := w.Flush(); err != nil {
		return err
	}

	if days := total.Total(); days > 0 {
		ctx.Printf("\n%s %s%%   %s %s%%\n",
			h.Setup.ParentAName, percent(total.A, days),
			h.Setup.ParentBName, percent(total.B, days))
	}
	return nil
}

func percent(n, of int) string {
	return strconv.FormatFloat(float64(n)*100/float64(of), 'f', 1, 64)
}

type CalendarDayCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today, tomorrow). Defaults to today."`
}

func (c *CalendarDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	h, err := ctx.Household()
	if err != nil {
		return err
	}

	day, err := ctx.Resolver.ResolveAssignment(date, h.Pattern, h.Exceptions)
	if err != nil {
		return err
	}
	ctx.Println(calendar.RenderDay(day, h.Setup))
	return nil
}

package custody

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/utils"
)

type ExceptionCmd struct {
	Add    ExceptionAddCmd    `cmd:"" help:"Override the weekly pattern for one date."`
	Remove ExceptionRemoveCmd `cmd:"" help:"Remove an override."`
	List   ExceptionListCmd   `cmd:"" help:"List overrides." default:"1"`
}

type ExceptionAddCmd struct {
	Date   string `arg:"" help:"Date (YYYY-MM-DD, today, tomorrow)."`
	Slots  string `arg:"" help:"One parent for the whole day (A|B) or four letters in segment order (e.g. AABB)."`
	Reason string `short:"r" help:"Why the day differs from the pattern."`
}

func (c *ExceptionAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	slots, err := models.ParseDaySlots(c.Slots)
	if err != nil {
		return err
	}

	exc := models.Exception{
		ID:     household.NewID(),
		Date:   utils.FormatDate(date),
		Slots:  slots,
		Reason: c.Reason,
	}

	replaced := false
	_, err = ctx.Mutate(func(h household.Household) (household.Household, error) {
		for _, e := range h.Exceptions {
			if e.Date == exc.Date {
				replaced = true
			}
		}
		return h.AddException(exc)
	})
	if err != nil {
		return err
	}

	verb := "Added"
	if replaced {
		verb = "Replaced"
	}
	ctx.Printf("✓ %s override for %s %s: %s (ID: %s)\n", verb, date.Weekday(), exc.Date, slots, exc.ID)
	return nil
}

type ExceptionRemoveCmd struct {
	ID string `arg:"" help:"Override ID."`
}

func (c *ExceptionRemoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.RemoveException(c.ID)
	}); err != nil {
		return err
	}
	ctx.Printf("✓ Removed override %s\n", c.ID)
	return nil
}

type ExceptionListCmd struct {
	From string `help:"Only list overrides on or after this date."`
}

func (c *ExceptionListCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}

	from := ""
	if c.From != "" {
		d, err := ctx.ParseDate(c.From)
		if err != nil {
			return err
		}
		from = utils.FormatDate(d)
	}

	var shown []models.Exception
	for _, e := range h.Exceptions {
		// YYYY-MM-DD sorts lexically
		if e.Date >= from {
			shown = append(shown, e)
		}
	}

	if len(shown) == 0 {
		ctx.Println("No overrides found.")
		return nil
	}

	// a replaced override is stored last
	sort.SliceStable(shown, func(i, j int) bool { return shown[i].Date < shown[j].Date })

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSLOTS\tREASON\tID")
	for _, e := range shown {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date, e.Slots, cli.Truncate(e.Reason, 40), e.ID)
	}
	return w.Flush()
}

package system

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
)

type SetupCmd struct {
	ParentA     string   `name:"parent-a" help:"Display name for parent A."`
	ParentB     string   `name:"parent-b" help:"Display name for parent B."`
	Child       []string `name:"child" help:"Child name (repeat for each child); replaces the current list."`
	Currency    string   `help:"Currency symbol used when showing amounts."`
	StartYear   int      `name:"start-year" help:"First year the household is tracked."`
	WeekStart   string   `name:"week-start" enum:",monday,sunday" default:"" help:"First day of the week in calendars (monday|sunday)."`
	Interactive bool     `short:"i" help:"Fill in the setup with an interactive form."`
}

// setupForm holds the string-typed values edited by the interactive form.
type setupForm struct {
	ParentA   string
	ParentB   string
	Children  string
	Currency  string
	StartYear string
	WeekStart time.Weekday
}

func (c *SetupCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Household()
	if err != nil {
		return err
	}

	s, err := c.apply(current.Setup)
	if err != nil {
		return err
	}

	if c.Interactive {
		if s, err = runSetupForm(s); err != nil {
			return err
		}
	}

	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.UpdateSetup(s)
	})
	if err != nil {
		return err
	}

	ctx.Println("✓ Household setup saved")
	printSetup(ctx, h.Setup)
	return nil
}

// apply overlays the flags that were given on s.
func (c *SetupCmd) apply(s models.Setup) (models.Setup, error) {
	if c.ParentA != "" {
		s.ParentAName = strings.TrimSpace(c.ParentA)
	}
	if c.ParentB != "" {
		s.ParentBName = strings.TrimSpace(c.ParentB)
	}
	if len(c.Child) > 0 {
		s.Children = nil
		for _, name := range c.Child {
			if name = strings.TrimSpace(name); name != "" {
				s.Children = append(s.Children, name)
			}
		}
	}
	if c.Currency != "" {
		s.Currency = c.Currency
	}
	if c.StartYear != 0 {
		if c.StartYear < 1900 || c.StartYear > 2200 {
			return s, fmt.Errorf("start year %d is out of range", c.StartYear)
		}
		s.StartYear = c.StartYear
	}
	switch c.WeekStart {
	case "monday":
		s.WeekStart = time.Monday
	case "sunday":
		s.WeekStart = time.Sunday
	}
	return s, nil
}

func runSetupForm(s models.Setup) (models.Setup, error) {
	fm := setupForm{
		ParentA:   s.ParentAName,
		ParentB:   s.ParentBName,
		Children:  strings.Join(s.Children, ", "),
		Currency:  s.Currency,
		StartYear: strconv.Itoa(s.StartYear),
		WeekStart: s.WeekStart,
	}

	if err := newSetupForm(&fm).Run(); err != nil {
		return s, err
	}
	return fm.setup(s)
}

func newSetupForm(fm *setupForm) *huh.Form {
	required := func(label string) func(string) error {
		return func(v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("%s is required", label)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Parent A").
				Value(&fm.ParentA).
				Validate(required("parent A's name")),
			huh.NewInput().
				Title("Parent B").
				Value(&fm.ParentB).
				Validate(required("parent B's name")),
			huh.NewInput().
				Title("Children").
				Description("Comma-separated").
				Value(&fm.Children).
				Validate(required("at least one child")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Currency symbol").
				Value(&fm.Currency),
			huh.NewInput().
				Title("Start year").
				Value(&fm.StartYear).
				Validate(func(v string) error {
					_, err := strconv.Atoi(strings.TrimSpace(v))
					return err
				}),
			huh.NewSelect[time.Weekday]().
				Title("Week starts on").
				Options(
					huh.NewOption("Monday", time.Monday),
					huh.NewOption("Sunday", time.Sunday),
				).
				Value(&fm.WeekStart),
		),
	).WithTheme(huh.ThemeDracula())
}

// setup converts the form values back onto base.
func (fm setupForm) setup(base models.Setup) (models.Setup, error) {
	year, err := strconv.Atoi(strings.TrimSpace(fm.StartYear))
	if err != nil {
		return base, fmt.Errorf("invalid start year %q: %w", fm.StartYear, err)
	}

	var children []string
	for _, name := range strings.Split(fm.Children, ",") {
		if name = strings.TrimSpace(name); name != "" {
			children = append(children, name)
		}
	}

	base.ParentAName = strings.TrimSpace(fm.ParentA)
	base.ParentBName = strings.TrimSpace(fm.ParentB)
	base.Children = children
	base.Currency = fm.Currency
	base.StartYear = year
	base.WeekStart = fm.WeekStart
	return base, nil
}

func printSetup(ctx *cli.Context, s models.Setup) {
	ctx.Printf("  Parent A:    %s\n", s.ParentAName)
	ctx.Printf("  Parent B:    %s\n", s.ParentBName)
	ctx.Printf("  Children:    %s\n", strings.Join(s.Children, ", "))
	ctx.Printf("  Currency:    %s\n", s.Currency)
	ctx.Printf("  Start year:  %d\n", s.StartYear)
	ctx.Printf("  Week starts: %s\n", s.WeekStart)
}

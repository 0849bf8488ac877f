package finance

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/constants"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/ledger"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/utils"
)

type SupportCmd struct {
	Add     SupportAddCmd     `cmd:"" help:"Record a child-support payment for a month."`
	Update  SupportUpdateCmd  `cmd:"" help:"Update a child-support entry."`
	List    SupportListCmd    `cmd:"" help:"List child-support entries." default:"1"`
	Summary SupportSummaryCmd `cmd:"" help:"Show child-support totals."`
}

type SupportAddCmd struct {
	Month   string `arg:"" help:"Support month (YYYY-MM)."`
	Due     string `arg:"" help:"Amount due."`
	Paid    string `default:"0" help:"Amount paid so far."`
	DueDate string `name:"due-date" help:"Due date (YYYY-MM-DD). Defaults to the first of the month."`
	Method  string `short:"m" help:"Payment method (e.g. bank transfer)."`
	Status  string `short:"s" enum:",paid,partial,unpaid" default:"" help:"Payment status. Derived from the amounts when omitted."`
}

func (c *SupportAddCmd) Run(ctx *cli.Context) error {
	month, err := utils.ParseMonth(c.Month)
	if err != nil {
		return err
	}
	dueDate := utils.FormatDate(month)
	if c.DueDate != "" {
		d, err := ctx.ParseDate(c.DueDate)
		if err != nil {
			return err
		}
		dueDate = utils.FormatDate(d)
	}

	var added models.SupportEntry
	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		due, err := parseAmount(h.Setup.Currency, c.Due)
		if err != nil {
			return h, err
		}
		paid, err := parseAmount(h.Setup.Currency, c.Paid)
		if err != nil {
			return h, err
		}
		added = models.SupportEntry{
			ID:            household.NewID(),
			Month:         month.Format(constants.MonthFormat),
			DueDate:       dueDate,
			AmountDue:     due,
			AmountPaid:    paid,
			PaymentMethod: c.Method,
			Status:        statusOrDerived(c.Status, due, paid),
		}
		return h.AddSupport(added)
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ Added support for %s: %s of %s, %s (ID: %s)\n", added.Month,
		utils.FormatMoney(h.Setup.Currency, added.AmountPaid),
		utils.FormatMoney(h.Setup.Currency, added.AmountDue), added.Status, added.ID)
	return nil
}

type SupportUpdateCmd struct {
	ID      string `arg:"" help:"Support entry ID."`
	Due     string `help:"New amount due."`
	Paid    string `help:"New amount paid."`
	DueDate string `name:"due-date" help:"New due date (YYYY-MM-DD)."`
	Method  string `short:"m" help:"New payment method."`
	Status  string `short:"s" enum:",paid,partial,unpaid" default:"" help:"New status. Re-derived from the amounts when omitted and an amount changes."`
}

func (c *SupportUpdateCmd) Run(ctx *cli.Context) error {
	var updated models.SupportEntry
	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		e, err := h.FindSupport(c.ID)
		if err != nil {
			return h, err
		}

		amountsChanged := false
		if c.Due != "" {
			if e.AmountDue, err = parseAmount(h.Setup.Currency, c.Due); err != nil {
				return h, err
			}
			amountsChanged = true
		}
		if c.Paid != "" {
			if e.AmountPaid, err = parseAmount(h.Setup.Currency, c.Paid); err != nil {
				return h, err
			}
			amountsChanged = true
		}
		if c.DueDate != "" {
			d, err := ctx.ParseDate(c.DueDate)
			if err != nil {
				return h, err
			}
			e.DueDate = utils.FormatDate(d)
		}
		if c.Method != "" {
			e.PaymentMethod = c.Method
		}
		switch {
		case c.Status != "":
			e.Status = models.SupportStatus(c.Status)
		case amountsChanged:
			e.Status = ledger.DeriveSupportStatus(e.AmountDue, e.AmountPaid)
		}

		updated = e
		return h.UpdateSupport(e)
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ Updated support for %s: %s of %s, %s\n", updated.Month,
		utils.FormatMoney(h.Setup.Currency, updated.AmountPaid),
		utils.FormatMoney(h.Setup.Currency, updated.AmountDue), updated.Status)
	return nil
}

type SupportListCmd struct {
	Unpaid bool `help:"Only list entries not marked paid."`
}

func (c *SupportListCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}

	var shown []models.SupportEntry
	for _, e := range h.Support {
		if c.Unpaid && e.Status == models.SupportPaid {
			continue
		}
		shown = append(shown, e)
	}

	if len(shown) == 0 {
		ctx.Println("No support entries found.")
		return nil
	}

	cur := h.Setup.Currency
	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tDUE DATE\tDUE\tPAID\tMETHOD\tSTATUS\tID")
	for _, e := range shown {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Month, e.DueDate, utils.FormatMoney(cur, e.AmountDue), utils.FormatMoney(cur, e.AmountPaid),
			e.PaymentMethod, e.Status, e.ID)
	}
	return w.Flush()
}

type SupportSummaryCmd struct{}

func (c *SupportSummaryCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}

	cur := h.Setup.Currency
	s := ledger.ComputeSupportSummary(h.Support)

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total due\t%s\n", utils.FormatMoney(cur, s.TotalDue))
	fmt.Fprintf(w, "Total paid\t%s\n", utils.FormatMoney(cur, s.TotalPaid))
	fmt.Fprintf(w, "Outstanding\t%s\n", utils.FormatMoney(cur, s.Outstanding))
	fmt.Fprintf(w, "Not fully paid\t%d\n", s.UnpaidCount)
	if err := w.Flush(); err != nil {
		return err
	}

	if mismatches := ledger.StatusMismatches(h.Support); len(mismatches) > 0 {
		ctx.Printf("\n⚠️  %d entries have a status that disagrees with their amounts (see 'coparent doctor')\n", len(mismatches))
	}
	return nil
}

func parseAmount(currency, s string) (decimal.Decimal, error) {
	d, err := utils.ParseMoney(currency, strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative: %s", s)
	}
	return d, nil
}

func statusOrDerived(status string, due, paid decimal.Decimal) models.SupportStatus {
	if status == "" {
		return ledger.DeriveSupportStatus(due, paid)
	}
	return models.SupportStatus(status)
}

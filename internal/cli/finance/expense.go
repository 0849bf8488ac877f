package finance

import (
	"fmt"
	"text/tabwriter"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/ledger"
	"github.com/julianstephens/coparent/internal/models"
	financeview "github.com/julianstephens/coparent/internal/tui/components/finance"
	"github.com/julianstephens/coparent/internal/utils"
)

type ExpenseCmd struct {
	Add     ExpenseAddCmd     `cmd:"" help:"Record a shared expense."`
	Remove  ExpenseRemoveCmd  `cmd:"" help:"Remove an expense."`
	List    ExpenseListCmd    `cmd:"" help:"List expenses." default:"1"`
	Balance ExpenseBalanceCmd `cmd:"" help:"Show who owes whom."`
}

type ExpenseAddCmd struct {
	Description string `arg:"" help:"What was paid for."`
	Amount      string `arg:"" help:"Amount paid (e.g. 42.50)."`
	PaidBy      string `name:"paid-by" short:"p" required:"" help:"Who paid (A|B)."`
	SplitA      int    `name:"split-a" default:"50" help:"Parent A's share in percent; B gets the rest."`
	Category    string `short:"c" default:"Other" help:"Expense category."`
	Date        string `short:"d" default:"today" help:"Date paid (YYYY-MM-DD, today, yesterday)."`
}

func (c *ExpenseAddCmd) Run(ctx *cli.Context) error {
	payer, err := models.ParseGuardian(c.PaidBy)
	if err != nil {
		return err
	}
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if c.SplitA < 0 || c.SplitA > 100 {
		return fmt.Errorf("--split-a must be between 0 and 100, got %d", c.SplitA)
	}

	var added models.Expense
	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		amount, err := parseAmount(h.Setup.Currency, c.Amount)
		if err != nil {
			return h, err
		}
		added = models.Expense{
			ID:          household.NewID(),
			Date:        utils.FormatDate(date),
			Description: c.Description,
			Category:    c.Category,
			Amount:      amount,
			PaidBy:      payer,
			SplitA:      c.SplitA,
			SplitB:      100 - c.SplitA,
		}
		return h.AddExpense(added)
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ Added expense: %s %s paid by %s (%d/%d) (ID: %s)\n",
		added.Description, utils.FormatMoney(h.Setup.Currency, added.Amount),
		h.Setup.Name(payer), added.SplitA, added.SplitB, added.ID)
	ctx.Println(financeview.BalanceLine(h.Setup, ledger.ComputeExpenseBalance(h.Expenses)))
	return nil
}

type ExpenseRemoveCmd struct {
	ID string `arg:"" help:"Expense ID."`
}

func (c *ExpenseRemoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.RemoveExpense(c.ID)
	}); err != nil {
		return err
	}
	ctx.Printf("✓ Removed expense %s\n", c.ID)
	return nil
}

type ExpenseListCmd struct {
	Category string `short:"c" help:"Only list this category."`
	Month    string `short:"m" help:"Only list expenses in this month (YYYY-MM)."`
}

func (c *ExpenseListCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}

	if c.Month != "" {
		if _, err := utils.ParseMonth(c.Month); err != nil {
			return err
		}
	}

	var shown []models.Expense
	for _, e := range h.Expenses {
		if c.Category != "" && e.Category != c.Category {
			continue
		}
		if c.Month != "" && (len(e.Date) < 7 || e.Date[:7] != c.Month) {
			continue
		}
		shown = append(shown, e)
	}

	if len(shown) == 0 {
		ctx.Println("No expenses found.")
		return nil
	}

	cur := h.Setup.Currency
	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tDESCRIPTION\tCATEGORY\tAMOUNT\tPAID BY\tSPLIT\tID")
	for _, e := range shown {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d/%d\t%s\n",
			e.Date, cli.Truncate(e.Description, 30), e.Category, utils.FormatMoney(cur, e.Amount),
			h.Setup.Name(e.PaidBy), e.SplitA, e.SplitB, e.ID)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	total := ledger.ComputeExpenseBalance(shown).TotalAmount
	ctx.Printf("\n%d expenses, total %s\n", len(shown), utils.FormatMoney(cur, total))
	return nil
}

type ExpenseBalanceCmd struct{}

func (c *ExpenseBalanceCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}

	s := h.Setup
	b := ledger.ComputeExpenseBalance(h.Expenses)

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total shared\t%s\n", utils.FormatMoney(s.Currency, b.TotalAmount))
	fmt.Fprintf(w, "Owed to %s\t%s\n", s.ParentAName, utils.FormatMoney(s.Currency, b.OwedToA))
	fmt.Fprintf(w, "Owed to %s\t%s\n", s.ParentBName, utils.FormatMoney(s.Currency, b.OwedToB))
	if err := w.Flush(); err != nil {
		return err
	}
	ctx.Println(financeview.BalanceLine(s, b))

	if totals := ledger.CategoryTotals(h.Expenses); len(totals) > 0 {
		ctx.Println()
		w = tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tCOUNT\tTOTAL")
		for _, ct := range totals {
			fmt.Fprintf(w, "%s\t%d\t%s\n", ct.Category, ct.Count, utils.FormatMoney(s.Currency, ct.Total))
		}
		return w.Flush()
	}
	return nil
}

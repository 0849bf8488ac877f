package system

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/ledger"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/schedule"
	financeview "github.com/julianstephens/coparent/internal/tui/components/finance"
	"github.com/julianstephens/coparent/internal/utils"
)

const (
	upcomingTaskLimit = 5
	recentNoteLimit   = 3
)

// StatusCmd prints the household overview: today's custody, open tasks,
// money owed and the latest notes.
type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}

	if !h.Setup.IsConfigured {
		ctx.Println("Welcome to coparent!")
		ctx.Println("Run 'coparent setup' to set parent names, children and preferences.")
		return nil
	}

	today := ctx.Today()
	day, err := ctx.Resolver.ResolveAssignment(today, h.Pattern, h.Exceptions)
	if err != nil {
		return err
	}

	var pending []models.Task
	for _, t := range h.Tasks {
		if t.Status != models.TaskDone {
			pending = append(pending, t)
		}
	}

	cur := h.Setup.Currency
	balance := ledger.ComputeExpenseBalance(h.Expenses)
	support := ledger.ComputeSupportSummary(h.Support)

	ctx.Printf("Hello, %s & %s. Here's your overview.\n\n", h.Setup.ParentAName, h.Setup.ParentBName)

	custody := fmt.Sprintf("%s with %s", today.Format("Monday, Jan 2 2006"), h.Setup.Name(schedule.DayOwner(day.Slots)))
	if day.Overridden() {
		reason := day.Reason
		if reason == "" {
			reason = "override"
		}
		custody += fmt.Sprintf(" (%s)", reason)
	}

	supportLine := "All support paid"
	if support.UnpaidCount > 0 {
		supportLine = fmt.Sprintf("%d unpaid", support.UnpaidCount)
	}

	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Today\t%s\n", custody)
	fmt.Fprintf(w, "Tasks\t%d pending of %d\n", len(pending), len(h.Tasks))
	fmt.Fprintf(w, "Expenses\t%s total, %s\n", utils.FormatMoney(cur, balance.TotalAmount), financeview.BalanceLine(h.Setup, balance))
	fmt.Fprintf(w, "Support\t%s\n", supportLine)
	fmt.Fprintf(w, "Notes\t%d\n", len(h.Notes))
	if err := w.Flush(); err != nil {
		return err
	}

	ctx.Println()
	ctx.Println("Upcoming tasks:")
	if len(pending) == 0 {
		ctx.Println("  No pending tasks. Add one with 'coparent task add'.")
	} else {
		cli.SortTasksByDue(pending)
		if len(pending) > upcomingTaskLimit {
			pending = pending[:upcomingTaskLimit]
		}
		w = tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
		for _, t := range pending {
			due := t.DueDate
			if due == "" {
				due = "-"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", due, cli.Truncate(t.Title, 40), cli.AssigneeName(h.Setup, t.AssignedTo), t.Priority)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	ctx.Println()
	ctx.Println("Recent notes:")
	if len(h.Notes) == 0 {
		ctx.Println("  No notes yet.")
		return nil
	}
	for i := len(h.Notes) - 1; i >= 0 && i >= len(h.Notes)-recentNoteLimit; i-- {
		n := h.Notes[i]
		content := strings.ReplaceAll(n.Content, "\n", " ")
		ctx.Printf("  %s  %s: %s\n", n.Date, h.Setup.Name(n.Author), cli.Truncate(content, 60))
	}
	return nil
}

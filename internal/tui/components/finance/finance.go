package finance

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/ledger"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/utils"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(24)

	owingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	settledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model shows the expense balance and child-support summary in a scrollable
// viewport.
type Model struct {
	viewport viewport.Model
	h        *household.Household
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.h == nil {
		return "No household loaded."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetHousehold(h household.Household) {
	m.h = &h
	m.Render()
}

func (m *Model) Render() {
	if m.h == nil {
		m.viewport.SetContent("No household loaded.")
		return
	}
	m.viewport.SetContent(Report(*m.h))
}

// Report renders the finance summary for h.
func Report(h household.Household) string {
	s := h.Setup

	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render(label), value)
	}

	balance := ledger.ComputeExpenseBalance(h.Expenses)
	b.WriteString(sectionStyle.Render("Shared expenses"))
	b.WriteString("\n")
	line("Total", utils.FormatMoney(s.Currency, balance.TotalAmount))
	line("Owed to "+s.ParentAName, utils.FormatMoney(s.Currency, balance.OwedToA))
	line("Owed to "+s.ParentBName, utils.FormatMoney(s.Currency, balance.OwedToB))
	b.WriteString(BalanceLine(s, balance))
	b.WriteString("\n")

	if totals := ledger.CategoryTotals(h.Expenses); len(totals) > 0 {
		b.WriteString(sectionStyle.Render("By category"))
		b.WriteString("\n")
		for _, ct := range totals {
			line(ct.Category, fmt.Sprintf("%s %s", utils.FormatMoney(s.Currency, ct.Total), statusStyle.Render(fmt.Sprintf("(%d)", ct.Count))))
		}
	}

	support := ledger.ComputeSupportSummary(h.Support)
	b.WriteString(sectionStyle.Render("Child support"))
	b.WriteString("\n")
	line("Due", utils.FormatMoney(s.Currency, support.TotalDue))
	line("Paid", utils.FormatMoney(s.Currency, support.TotalPaid))
	line("Outstanding", utils.FormatMoney(s.Currency, support.Outstanding))
	line("Entries not fully paid", fmt.Sprintf("%d", support.UnpaidCount))

	for _, e := range h.Support {
		if e.Status == models.SupportPaid {
			continue
		}
		fmt.Fprintf(&b, "  %s  due %s  %s of %s  %s\n", e.Month, e.DueDate,
			utils.FormatMoney(s.Currency, e.AmountPaid), utils.FormatMoney(s.Currency, e.AmountDue),
			statusStyle.Render(string(e.Status)))
	}

	return b.String()
}

// BalanceLine states who owes whom, or that expenses are settled.
func BalanceLine(s models.Setup, balance ledger.ExpenseBalance) string {
	if balance.Settled() {
		return settledStyle.Render("All settled up")
	}
	return owingStyle.Render(fmt.Sprintf("%s owes %s %s",
		s.Name(balance.Owing), s.Name(balance.Owing.Other()), utils.FormatMoney(s.Currency, balance.Amount())))
}

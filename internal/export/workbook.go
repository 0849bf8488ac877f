// Package export writes a household report as an XLSX workbook.
package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/ledger"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/schedule"
)

const (
	SheetSummary  = "Summary"
	SheetCalendar = "Calendar"
	SheetExpenses = "Expenses"
	SheetSupport  = "Child Support"
	SheetTasks    = "Tasks"
	SheetNotes    = "Notes"
)

var (
	CalendarHeader = []string{"Date", "Weekday", "Early Morning", "Morning", "Afternoon", "Night", "Override"}
	ExpenseHeader  = []string{"Date", "Description", "Category", "Amount", "Paid By", "Split A %", "Split B %"}
	SupportHeader  = []string{"Month", "Due Date", "Amount Due", "Amount Paid", "Method", "Status"}
	TaskHeader     = []string{"Title", "Assigned To", "Due Date", "Status", "Priority"}
	NoteHeader     = []string{"Date", "Author", "Content", "Tags"}
)

// Workbook builds the report for year. The caller must Close the result.
func Workbook(h household.Household, r *schedule.Resolver, year int) (*excelize.File, error) {
	months, err := r.ResolveYear(year, h.Pattern, h.Exceptions)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	w := &writer{f: f}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	w.headerStyle = headerStyle

	w.summary(h, months)
	w.calendar(h.Setup, months)
	w.expenses(h.Setup, h.Expenses)
	w.support(h.Support)
	w.tasks(h.Setup, h.Tasks)
	w.notes(h.Setup, h.Notes)

	if w.err != nil {
		f.Close()
		return nil, w.err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	if idx, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// WriteFile builds the report for year and saves it to path.
func WriteFile(path string, h household.Household, r *schedule.Resolver, year int) error {
	f, err := Workbook(h, r, year)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writer collects the first error so sheet builders can stay linear.
type writer struct {
	f           *excelize.File
	headerStyle int
	err         error
}

func (w *writer) sheet(name string, header []string, widths []float64) {
	if w.err != nil {
		return
	}
	if _, err := w.f.NewSheet(name); err != nil {
		w.err = fmt.Errorf("failed to create sheet %s: %w", name, err)
		return
	}
	if header == nil {
		return
	}
	w.row(name, 1, toAny(header))

	end, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := w.f.SetCellStyle(name, "A1", end, w.headerStyle); err != nil {
		w.err = fmt.Errorf("failed to style header on %s: %w", name, err)
		return
	}
	for i, width := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := w.f.SetColWidth(name, col, col, width); err != nil {
			w.err = err
			return
		}
	}
}

func (w *writer) row(sheet string, n int, values []any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", sheet, n, err)
	}
}

func (w *writer) summary(h household.Household, months []schedule.MonthSpan) {
	w.sheet(SheetSummary, nil, nil)
	if w.err != nil {
		return
	}
	if err := w.f.SetColWidth(SheetSummary, "A", "A", 28); err != nil {
		w.err = err
		return
	}

	var days []schedule.DayAssignment
	for _, m := range months {
		days = append(days, m.Days...)
	}
	count := schedule.Count(days)
	balance := ledger.ComputeExpenseBalance(h.Expenses)
	support := ledger.ComputeSupportSummary(h.Support)
	s := h.Setup

	owing := "Settled"
	if !balance.Settled() {
		owing = fmt.Sprintf("%s owes %s", s.Name(balance.Owing), s.Name(balance.Owing.Other()))
	}

	rows := [][]any{
		{"Parent A", s.ParentAName},
		{"Parent B", s.ParentBName},
		{"Children", strings.Join(s.Children, ", ")},
		{"Currency", s.Currency},
		{},
		{"Days with " + s.ParentAName, count.A},
		{"Days with " + s.ParentBName, count.B},
		{"Overridden days", count.Overridden},
		{},
		{"Total expenses", balance.TotalAmount.InexactFloat64()},
		{"Owed to " + s.ParentAName, balance.OwedToA.InexactFloat64()},
		{"Owed to " + s.ParentBName, balance.OwedToB.InexactFloat64()},
		{"Balance", owing},
		{"Outstanding amount", balance.Amount().InexactFloat64()},
		{},
		{"Support due", support.TotalDue.InexactFloat64()},
		{"Support paid", support.TotalPaid.InexactFloat64()},
		{"Support outstanding", support.Outstanding.InexactFloat64()},
		{"Unpaid support entries", support.UnpaidCount},
	}
	for i, r := range rows {
		w.row(SheetSummary, i+1, r)
	}
}

func (w *writer) calendar(s models.Setup, months []schedule.MonthSpan) {
	w.sheet(SheetCalendar, CalendarHeader, []float64{12, 11, 14, 14, 14, 14, 30})
	n := 2
	for _, m := range months {
		for _, d := range m.Days {
			w.row(SheetCalendar, n, []any{
				d.Date.Format("2006-01-02"),
				d.Date.Weekday().String(),
				s.Name(d.Slots.EarlyMorning),
				s.Name(d.Slots.Morning),
				s.Name(d.Slots.Afternoon),
				s.Name(d.Slots.Night),
				d.Reason,
			})
			n++
		}
	}
}

func (w *writer) expenses(s models.Setup, expenses []models.Expense) {
	w.sheet(SheetExpenses, ExpenseHeader, []float64{12, 30, 14, 12, 14, 10, 10})
	for i, e := range expenses {
		w.row(SheetExpenses, i+2, []any{
			e.Date, e.Description, e.Category, e.Amount.InexactFloat64(), s.Name(e.PaidBy), e.SplitA, e.SplitB,
		})
	}
	if len(expenses) > 0 {
		balance := ledger.ComputeExpenseBalance(expenses)
		w.row(SheetExpenses, len(expenses)+3, []any{"Total", "", "", balance.TotalAmount.InexactFloat64()})
	}
}

func (w *writer) support(entries []models.SupportEntry) {
	w.sheet(SheetSupport, SupportHeader, []float64{10, 12, 12, 12, 18, 10})
	for i, e := range entries {
		w.row(SheetSupport, i+2, []any{
			e.Month, e.DueDate, e.AmountDue.InexactFloat64(), e.AmountPaid.InexactFloat64(), e.PaymentMethod, string(e.Status),
		})
	}
}

func (w *writer) tasks(s models.Setup, tasks []models.Task) {
	w.sheet(SheetTasks, TaskHeader, []float64{30, 14, 12, 12, 10})
	for i, t := range tasks {
		w.row(SheetTasks, i+2, []any{
			t.Title, assigneeName(s, t.AssignedTo), t.DueDate, string(t.Status), string(t.Priority),
		})
	}
}

func (w *writer) notes(s models.Setup, notes []models.Note) {
	w.sheet(SheetNotes, NoteHeader, []float64{17, 14, 60, 20})
	for i, n := range notes {
		w.row(SheetNotes, i+2, []any{n.Date, s.Name(n.Author), n.Content, strings.Join(n.Tags, ", ")})
	}
}

func assigneeName(s models.Setup, a models.Assignee) string {
	switch a {
	case models.AssigneeA:
		return s.ParentAName
	case models.AssigneeB:
		return s.ParentBName
	default:
		return "Both"
	}
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

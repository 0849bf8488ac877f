package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/schedule"
	"github.com/julianstephens/coparent/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(cellWidth).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center)

	guardianAStyle = cellStyle.Foreground(lipgloss.Color("75"))
	guardianBStyle = cellStyle.Foreground(lipgloss.Color("212"))
	outsideStyle   = cellStyle.Foreground(lipgloss.Color("238"))
	selectedStyle  = cellStyle.Reverse(true).Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(15)

	legendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)
)

const cellWidth = 7

// RenderMonth draws a month grid. days must cover the schedule.MonthGrid range
// for year/month; cells outside the month are dimmed. A zero selected date
// highlights nothing.
func RenderMonth(days []schedule.DayAssignment, setup models.Setup, year int, month time.Month, selected time.Time) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n")

	var header []string
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(setup.WeekStart) + i) % 7)
		header = append(header, headerStyle.Render(wd.String()[:3]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	selectedKey := ""
	if !selected.IsZero() {
		selectedKey = utils.FormatDate(selected)
	}

	var week []string
	for _, d := range days {
		week = append(week, renderCell(d, month, selectedKey))
		if len(week) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, week...))
			b.WriteString("\n")
			week = nil
		}
	}
	if len(week) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, week...))
		b.WriteString("\n")
	}

	b.WriteString(legendStyle.Render(fmt.Sprintf("A = %s   B = %s   * override   ~ split day",
		setup.ParentAName, setup.ParentBName)))
	return b.String()
}

func renderCell(d schedule.DayAssignment, month time.Month, selectedKey string) string {
	owner := schedule.DayOwner(d.Slots)
	marker := " "
	switch {
	case d.Overridden():
		marker = "*"
	case d.Slots != models.UniformSlots(owner):
		marker = "~"
	}
	text := fmt.Sprintf("%2d %s%s", d.Date.Day(), owner, marker)

	switch {
	case utils.FormatDate(d.Date) == selectedKey:
		return selectedStyle.Render(text)
	case d.Date.Month() != month:
		return outsideStyle.Render(text)
	case owner == models.GuardianA:
		return guardianAStyle.Render(text)
	case owner == models.GuardianB:
		return guardianBStyle.Render(text)
	default:
		return cellStyle.Render(text)
	}
}

// RenderDay lists the guardian for every segment of one day.
func RenderDay(d schedule.DayAssignment, setup models.Setup) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", d.Date.Weekday(), utils.FormatDate(d.Date))))
	b.WriteString("\n")
	for _, seg := range models.Segments {
		g := d.Slots.Get(seg)
		fmt.Fprintf(&b, "%s%s (%s)\n", labelStyle.Render(SegmentLabel(seg)), setup.Name(g), g)
	}
	if d.Overridden() {
		reason := d.Reason
		if reason == "" {
			reason = "no reason given"
		}
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Override"), reason)
	}
	return b.String()
}

// SegmentLabel is the display name of seg.
func SegmentLabel(seg models.Segment) string {
	switch seg {
	case models.SegmentEarlyMorning:
		return "Early Morning"
	case models.SegmentMorning:
		return "Morning"
	case models.SegmentAfternoon:
		return "Afternoon"
	case models.SegmentNight:
		return "Night"
	default:
		return string(seg)
	}
}

type KeyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
	}
}

// Model browses one month at a time with a day cursor.
type Model struct {
	Keys       KeyMap
	resolver   *schedule.Resolver
	setup      models.Setup
	pattern    models.WeeklyPattern
	exceptions []models.Exception
	today      time.Time
	cursor     time.Time
	days       []schedule.DayAssignment
	err        error
}

func New(resolver *schedule.Resolver, today time.Time) Model {
	today = utils.DateOnly(today)
	return Model{
		Keys:     DefaultKeyMap(),
		resolver: resolver,
		today:    today,
		cursor:   today,
	}
}

// SetHousehold replaces the schedule inputs and re-resolves the visible month.
func (m *Model) SetHousehold(h household.Household) {
	m.setup = h.Setup
	m.pattern = h.Pattern
	m.exceptions = h.Exceptions
	m.resolve()
}

// Cursor returns the selected date.
func (m Model) Cursor() time.Time {
	return m.cursor
}

// Err is the resolution error for the visible month, if any.
func (m Model) Err() error {
	return m.err
}

// Selected returns the resolved selected day.
func (m Model) Selected() (schedule.DayAssignment, bool) {
	want := utils.FormatDate(m.cursor)
	for _, d := range m.days {
		if utils.FormatDate(d.Date) == want {
			return d, true
		}
	}
	return schedule.DayAssignment{}, false
}

func (m *Model) resolve() {
	start, end := schedule.MonthGrid(m.cursor.Year(), m.cursor.Month(), m.setup.WeekStart)
	m.days, m.err = m.resolver.ResolveRange(start, end, m.pattern, m.exceptions)
}

func (m *Model) moveTo(date time.Time) {
	sameMonth := date.Year() == m.cursor.Year() && date.Month() == m.cursor.Month()
	m.cursor = date
	if !sameMonth {
		m.resolve()
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.Keys.PrevDay):
		m.moveTo(m.cursor.AddDate(0, 0, -1))
	case key.Matches(keyMsg, m.Keys.NextDay):
		m.moveTo(m.cursor.AddDate(0, 0, 1))
	case key.Matches(keyMsg, m.Keys.PrevWeek):
		m.moveTo(m.cursor.AddDate(0, 0, -7))
	case key.Matches(keyMsg, m.Keys.NextWeek):
		m.moveTo(m.cursor.AddDate(0, 0, 7))
	case key.Matches(keyMsg, m.Keys.PrevMonth):
		m.moveTo(firstOfMonth(m.cursor).AddDate(0, -1, 0))
	case key.Matches(keyMsg, m.Keys.NextMonth):
		m.moveTo(firstOfMonth(m.cursor).AddDate(0, 1, 0))
	case key.Matches(keyMsg, m.Keys.Today):
		m.moveTo(m.today)
	}
	return m, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Cannot show the calendar: %v", m.err)
	}

	grid := RenderMonth(m.days, m.setup, m.cursor.Year(), m.cursor.Month(), m.cursor)
	detail := ""
	if d, ok := m.Selected(); ok {
		detail = RenderDay(d, m.setup)
	}

	count := schedule.Count(m.inMonth())
	summary := fmt.Sprintf("%s: %d days   %s: %d days   overrides: %d",
		m.setup.ParentAName, count.A, m.setup.ParentBName, count.B, count.Overridden)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", detail),
		"",
		summary,
	)
}

func (m Model) inMonth() []schedule.DayAssignment {
	var out []schedule.DayAssignment
	for _, d := range m.days {
		if d.Date.Month() == m.cursor.Month() {
			out = append(out, d)
		}
	}
	return out
}

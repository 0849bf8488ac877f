package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/logger"
	"github.com/julianstephens/coparent/internal/schedule"
	"github.com/julianstephens/coparent/internal/storage"
	"github.com/julianstephens/coparent/internal/tui/components/calendar"
	"github.com/julianstephens/coparent/internal/tui/components/finance"
	"github.com/julianstephens/coparent/internal/tui/components/tasklist"
)

type SessionState int

const (
	StateCalendar SessionState = iota
	StateFinances
	StateTasks
	StateNotes
)

var tabTitles = []string{"Calendar", "Finances", "Tasks", "Notes"}

type Model struct {
	store     storage.Provider
	household household.Household
	state     SessionState
	keys      KeyMap
	help      help.Model
	calendar  calendar.Model
	finance   finance.Model
	taskList  tasklist.Model
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

// NewModel loads the household from store. A load failure is shown in the
// view rather than returned so the user can fix it and reload.
func NewModel(store storage.Provider, resolver *schedule.Resolver, today time.Time) Model {
	m := Model{
		store:    store,
		state:    StateCalendar,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		calendar: calendar.New(resolver, today),
		finance:  finance.New(0, 0),
		taskList: tasklist.New(0, 0),
	}
	m.reload()
	return m
}

func (m *Model) reload() {
	h, err := m.store.GetHousehold()
	if err != nil {
		m.err = err
		logger.Error("Failed to load household", "error", err)
		return
	}
	m.err = nil
	m.setHousehold(h)
}

func (m *Model) setHousehold(h household.Household) {
	m.household = h
	m.calendar.SetHousehold(h)
	m.finance.SetHousehold(h)
	m.taskList.SetTasks(h.Tasks, h.Setup)
}

// apply runs one household command and saves the resulting snapshot. The
// in-memory household only changes once the save succeeded.
func (m *Model) apply(status string, command func(household.Household) (household.Household, error)) {
	next, err := command(m.household)
	if err == nil {
		err = m.store.SaveHousehold(next)
	}
	if err != nil {
		m.err = err
		logger.Error("Failed to update household", "error", err)
		return
	}
	m.err = nil
	m.status = status
	m.setHousehold(next)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateCalendar:
		ck := m.calendar.Keys
		keys = append(keys, ck.PrevMonth, ck.NextMonth, ck.Today)
	case StateTasks:
		tk := tasklist.DefaultKeyMap()
		keys = append(keys, tk.Advance, tk.Delete)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Jump, m.keys.Quit, m.keys.Help, m.keys.Reload}

	var actions []key.Binding
	switch m.state {
	case StateCalendar:
		ck := m.calendar.Keys
		actions = []key.Binding{ck.PrevDay, ck.NextDay, ck.PrevWeek, ck.NextWeek, ck.PrevMonth, ck.NextMonth, ck.Today}
	case StateTasks:
		tk := tasklist.DefaultKeyMap()
		actions = []key.Binding{tk.Advance, tk.Delete}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/tui/components/tasklist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, status line and help take four rows
		m.finance.SetSize(msg.Width-4, msg.Height-6)
		m.taskList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tasklist.AdvanceTaskMsg:
		m.apply("Task updated", func(h household.Household) (household.Household, error) {
			t, err := h.FindTask(msg.ID)
			if err != nil {
				return h, err
			}
			t.Status = tasklist.NextStatus(t.Status)
			return h.UpdateTask(t)
		})
		return m, nil

	case tasklist.DeleteTaskMsg:
		m.apply("Task deleted", func(h household.Household) (household.Household, error) {
			return h.RemoveTask(msg.ID)
		})
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
			m.status = ""
			return m, nil
		case key.Matches(msg, m.keys.Jump):
			if tab, ok := tabForKey(msg.String()); ok {
				m.state = tab
				m.status = ""
			}
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			if m.err == nil {
				m.status = "Reloaded"
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
	case StateFinances:
		m.finance, cmd = m.finance.Update(msg)
	case StateTasks:
		m.taskList, cmd = m.taskList.Update(msg)
	}
	return m, cmd
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateCalendar:
		content = docStyle.Render(m.calendar.View())
	case StateFinances:
		content = docStyle.Render(m.finance.View())
	case StateTasks:
		content = docStyle.Render(m.taskList.View())
	case StateNotes:
		content = docStyle.Render(m.viewNotes())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.err != nil {
		return dangerStyle.Render("Error: " + m.err.Error())
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewNotes() string {
	if len(m.household.Notes) == 0 {
		return "No notes yet. Add one with 'coparent note add'."
	}

	var b strings.Builder
	for _, n := range m.household.Notes {
		meta := fmt.Sprintf("%s  %s", n.Date, m.household.Setup.Name(n.Author))
		b.WriteString(noteMetaStyle.Render(meta))
		if len(n.Tags) > 0 {
			b.WriteString("  ")
			b.WriteString(tagStyle.Render("#" + strings.Join(n.Tags, " #")))
		}
		b.WriteString("\n")
		b.WriteString(n.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

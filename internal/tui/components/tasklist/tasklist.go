package tasklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/coparent/internal/models"
)

// AdvanceTaskMsg asks the parent to move a task to its next status.
type AdvanceTaskMsg struct {
	ID string
}

type DeleteTaskMsg struct {
	ID string
}

type Item struct {
	Task     models.Task
	Assignee string
}

func (i Item) Title() string {
	switch i.Task.Status {
	case models.TaskDone:
		return "✓ " + i.Task.Title
	case models.TaskInProgress:
		return "… " + i.Task.Title
	default:
		return "• " + i.Task.Title
	}
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s priority | %s", i.Task.Status, i.Task.Priority, i.Assignee)
	if i.Task.DueDate != "" {
		desc += " | due " + i.Task.DueDate
	}
	return desc
}

func (i Item) FilterValue() string { return i.Task.Title }

// NextStatus cycles todo → in-progress → done → todo.
func NextStatus(s models.TaskStatus) models.TaskStatus {
	for i, status := range models.TaskStatuses {
		if status == s {
			return models.TaskStatuses[(i+1)%len(models.TaskStatuses)]
		}
	}
	return models.TaskTodo
}

type KeyMap struct {
	Advance key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Advance: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "next status"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the parent model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Advance, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Advance, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

// SetTasks replaces the items, naming assignees from setup.
func (m *Model) SetTasks(tasks []models.Task, setup models.Setup) {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = Item{Task: t, Assignee: assigneeName(setup, t.AssignedTo)}
	}
	m.list.SetItems(items)
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

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Advance):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return AdvanceTaskMsg{ID: i.Task.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: i.Task.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks yet.\n  Add one with 'coparent task add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

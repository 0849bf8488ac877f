package tasklist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		in   models.TaskStatus
		want models.TaskStatus
	}{
		{in: models.TaskTodo, want: models.TaskInProgress},
		{in: models.TaskInProgress, want: models.TaskDone},
		{in: models.TaskDone, want: models.TaskTodo},
		{in: "bogus", want: models.TaskTodo},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := NextStatus(tt.in); got != tt.want {
				t.Errorf("NextStatus(%s) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestItemDescription(t *testing.T) {
	setup := household.Default().Setup
	item := Item{
		Task:     models.Task{Title: "Dentist", Status: models.TaskTodo, Priority: models.PriorityHigh, DueDate: "2026-03-10"},
		Assignee: assigneeName(setup, models.AssigneeB),
	}
	if got, want := item.Description(), "todo | high priority | Parent B | due 2026-03-10"; got != want {
		t.Errorf("Description() = %q, want %q", got, want)
	}
	if got := item.Title(); got != "• Dentist" {
		t.Errorf("Title() = %q", got)
	}
}

func TestUpdateEmitsMessages(t *testing.T) {
	m := New(80, 20)
	m.SetTasks([]models.Task{
		{ID: "t1", Title: "Pack bag", AssignedTo: models.AssigneeA, Status: models.TaskTodo, Priority: models.PriorityLow},
	}, household.Default().Setup)

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{key: "s", want: AdvanceTaskMsg{ID: "t1"}},
		{key: "d", want: DeleteTaskMsg{ID: "t1"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("message = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestUpdateOnEmptyList(t *testing.T) {
	m := New(80, 20)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd != nil {
		if _, isDelete := cmd().(DeleteTaskMsg); isDelete {
			t.Error("delete on an empty list should not emit DeleteTaskMsg")
		}
	}
}

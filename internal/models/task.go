package models

import (
	"fmt"
	"time"
)

type Assignee string

type TaskStatus string

type Priority string

const (
	AssigneeA    Assignee = "A"
	AssigneeB    Assignee = "B"
	AssigneeBoth Assignee = "both"

	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskDone       TaskStatus = "done"

	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TaskStatuses in board column order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskDone}

// Task is a shared to-do assigned to one or both guardians.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	AssignedTo Assignee   `json:"assigned_to"`
	DueDate    string     `json:"due_date"` // YYYY-MM-DD
	Status     TaskStatus `json:"status"`
	Priority   Priority   `json:"priority"`
}

func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task id cannot be empty")
	}
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	switch t.AssignedTo {
	case AssigneeA, AssigneeB, AssigneeBoth:
	default:
		return fmt.Errorf("invalid assignee %q", t.AssignedTo)
	}
	if t.DueDate != "" {
		if _, err := time.Parse("2006-01-02", t.DueDate); err != nil {
			return fmt.Errorf("invalid due date (expected YYYY-MM-DD): %w", err)
		}
	}
	switch t.Status {
	case TaskTodo, TaskInProgress, TaskDone:
	default:
		return fmt.Errorf("invalid task status %q", t.Status)
	}
	switch t.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		return fmt.Errorf("invalid priority %q", t.Priority)
	}
	return nil
}

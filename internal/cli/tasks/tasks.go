package tasks

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/utils"
)

type TaskCmd struct {
	Add    TaskAddCmd    `cmd:"" help:"Add a shared task."`
	Update TaskUpdateCmd `cmd:"" help:"Update a task."`
	Remove TaskRemoveCmd `cmd:"" help:"Remove a task."`
	List   TaskListCmd   `cmd:"" help:"List tasks." default:"1"`
}

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Assign   string `short:"a" default:"both" help:"Who does it (a|b|both)."`
	Due      string `short:"d" help:"Due date (YYYY-MM-DD, today, tomorrow)."`
	Priority string `short:"p" enum:"low,medium,high" default:"medium" help:"Priority (low|medium|high)."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	assignee, err := cli.ParseAssignee(c.Assign)
	if err != nil {
		return err
	}
	due, err := optionalDate(ctx, c.Due)
	if err != nil {
		return err
	}

	task := models.Task{
		ID:         household.NewID(),
		Title:      c.Title,
		AssignedTo: assignee,
		DueDate:    due,
		Status:     models.TaskTodo,
		Priority:   models.Priority(c.Priority),
	}

	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.AddTask(task)
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ Added task: %s for %s (ID: %s)\n", task.Title, cli.AssigneeName(h.Setup, task.AssignedTo), task.ID)
	return nil
}

type TaskUpdateCmd struct {
	ID       string `arg:"" help:"Task ID."`
	Title    string `help:"New title."`
	Assign   string `short:"a" help:"New assignee (a|b|both)."`
	Due      string `short:"d" help:"New due date (YYYY-MM-DD); 'none' clears it."`
	Status   string `short:"s" enum:",todo,in-progress,done" default:"" help:"New status (todo|in-progress|done)."`
	Priority string `short:"p" enum:",low,medium,high" default:"" help:"New priority (low|medium|high)."`
}

func (c *TaskUpdateCmd) Run(ctx *cli.Context) error {
	var updated models.Task
	h, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		t, err := h.FindTask(c.ID)
		if err != nil {
			return h, err
		}

		if c.Title != "" {
			t.Title = c.Title
		}
		if c.Assign != "" {
			if t.AssignedTo, err = cli.ParseAssignee(c.Assign); err != nil {
				return h, err
			}
		}
		switch strings.ToLower(c.Due) {
		case "":
		case "none":
			t.DueDate = ""
		default:
			if t.DueDate, err = optionalDate(ctx, c.Due); err != nil {
				return h, err
			}
		}
		if c.Status != "" {
			t.Status = models.TaskStatus(c.Status)
		}
		if c.Priority != "" {
			t.Priority = models.Priority(c.Priority)
		}

		updated = t
		return h.UpdateTask(t)
	})
	if err != nil {
		return err
	}

	ctx.Printf("✓ Updated task: %s [%s] for %s\n", updated.Title, updated.Status, cli.AssigneeName(h.Setup, updated.AssignedTo))
	return nil
}

type TaskRemoveCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskRemoveCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Mutate(func(h household.Household) (household.Household, error) {
		return h.RemoveTask(c.ID)
	}); err != nil {
		return err
	}
	ctx.Printf("✓ Removed task %s\n", c.ID)
	return nil
}

type TaskListCmd struct {
	Status string `short:"s" enum:",todo,in-progress,done" default:"" help:"Only list tasks with this status."`
	Assign string `short:"a" help:"Only list tasks for this assignee (a|b|both)."`
	All    bool   `help:"Include done tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Household()
	if err != nil {
		return err
	}

	var assignee models.Assignee
	if c.Assign != "" {
		if assignee, err = cli.ParseAssignee(c.Assign); err != nil {
			return err
		}
	}

	var shown []models.Task
	for _, t := range h.Tasks {
		if c.Status != "" && t.Status != models.TaskStatus(c.Status) {
			continue
		}
		if c.Status == "" && !c.All && t.Status == models.TaskDone {
			continue
		}
		if assignee != "" && t.AssignedTo != assignee {
			continue
		}
		shown = append(shown, t)
	}

	if len(shown) == 0 {
		ctx.Println("No tasks found.")
		return nil
	}

	cli.SortTasksByDue(shown)

	today := utils.FormatDate(ctx.Today())
	w := tabwriter.NewWriter(ctx.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STATUS\tTITLE\tASSIGNED\tDUE\tPRIORITY\tID")
	for _, t := range shown {
		due := t.DueDate
		if due != "" && due < today && t.Status != models.TaskDone {
			due += " (overdue)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Status, cli.Truncate(t.Title, 40), cli.AssigneeName(h.Setup, t.AssignedTo), due, t.Priority, t.ID)
	}
	return w.Flush()
}

func optionalDate(ctx *cli.Context, s string) (string, error) {
	if s == "" {
		return "", nil
	}
	d, err := ctx.ParseDate(s)
	if err != nil {
		return "", err
	}
	return utils.FormatDate(d), nil
}

package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/coparent/internal/backup"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/logger"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/schedule"
	"github.com/julianstephens/coparent/internal/storage"
	"github.com/julianstephens/coparent/internal/utils"
)

type Context struct {
	Store    storage.Provider
	Resolver *schedule.Resolver
	// Out receives command output; nil means stdout.
	Out io.Writer
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// Clock returns the current time.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today is the current calendar date.
func (c *Context) Today() time.Time {
	if c.Now == nil {
		return utils.Today()
	}
	return utils.DateOnly(c.Now())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !storage.IsSQLite(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Household loads the store and returns the current snapshot.
func (c *Context) Household() (household.Household, error) {
	if err := c.Store.Load(); err != nil {
		return household.Household{}, err
	}
	return c.Store.GetHousehold()
}

// Mutate applies one household command to the stored snapshot and saves the
// result. A backup of the previous state is taken first for SQLite stores.
func (c *Context) Mutate(command func(household.Household) (household.Household, error)) (household.Household, error) {
	h, err := c.Household()
	if err != nil {
		return household.Household{}, err
	}

	next, err := command(h)
	if err != nil {
		return household.Household{}, err
	}

	c.PerformAutomaticBackup()

	if err := c.Store.SaveHousehold(next); err != nil {
		return household.Household{}, fmt.Errorf("failed to save household: %w", err)
	}
	logger.Debug("Saved household", "store", c.Store.GetConfigPath())
	return next, nil
}

// ParseDate accepts YYYY-MM-DD, "today", "yesterday" or "tomorrow".
func (c *Context) ParseDate(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return c.Today(), nil
	case "yesterday":
		return c.Today().AddDate(0, 0, -1), nil
	case "tomorrow":
		return c.Today().AddDate(0, 0, 1), nil
	}
	return utils.ParseDate(s)
}

// AssigneeName is the display name for a task assignee.
func AssigneeName(s models.Setup, a models.Assignee) string {
	switch a {
	case models.AssigneeA:
		return s.ParentAName
	case models.AssigneeB:
		return s.ParentBName
	default:
		return "Both"
	}
}

// ParseAssignee accepts a, b or both.
func ParseAssignee(s string) (models.Assignee, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return models.AssigneeA, nil
	case "b":
		return models.AssigneeB, nil
	case "both", "":
		return models.AssigneeBoth, nil
	default:
		return "", fmt.Errorf("invalid assignee %q (expected a, b or both)", s)
	}
}

// SortTasksByDue orders dated tasks first, soonest first. Undated tasks keep
// their insertion order.
func SortTasksByDue(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].DueDate, tasks[j].DueDate
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
}

// Truncate shortens s to n runes for table output.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

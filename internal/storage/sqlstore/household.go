// Package sqlstore reads and writes a household snapshot over database/sql.
// The SQLite and PostgreSQL stores share it and differ only in placeholders.
package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
)

// ErrNoHousehold is returned by LoadHousehold when the setup row is missing.
var ErrNoHousehold = errors.New("household not initialized")

// Placeholder style for a SQL dialect.
type Placeholder int

const (
	Question Placeholder = iota // ?
	Dollar                      // $1, $2, ...
)

// Rebind rewrites ? placeholders for the dialect. Queries in this package
// never contain a literal question mark.
func (p Placeholder) Rebind(query string) string {
	if p == Question {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// LoadHousehold reads the full snapshot. The result is not validated.
func LoadHousehold(db *sql.DB, ph Placeholder) (household.Household, error) {
	var h household.Household
	var err error

	if h.Setup, err = loadSetup(db, ph); err != nil {
		return household.Household{}, err
	}
	if h.Pattern, err = loadPattern(db); err != nil {
		return household.Household{}, err
	}
	if h.Exceptions, err = loadExceptions(db); err != nil {
		return household.Household{}, err
	}
	if h.Expenses, err = loadExpenses(db); err != nil {
		return household.Household{}, err
	}
	if h.Support, err = loadSupport(db); err != nil {
		return household.Household{}, err
	}
	if h.Tasks, err = loadTasks(db); err != nil {
		return household.Household{}, err
	}
	if h.Notes, err = loadNotes(db); err != nil {
		return household.Household{}, err
	}
	return h, nil
}

func loadSetup(q querier, ph Placeholder) (models.Setup, error) {
	var s models.Setup
	var weekStart int
	err := q.QueryRow(ph.Rebind(`
		SELECT parent_a_name, parent_b_name, currency, start_year, week_start, is_configured
		FROM setup WHERE id = ?`), 1).
		Scan(&s.ParentAName, &s.ParentBName, &s.Currency, &s.StartYear, &weekStart, &s.IsConfigured)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Setup{}, ErrNoHousehold
		}
		return models.Setup{}, fmt.Errorf("failed to read setup: %w", err)
	}
	s.WeekStart = time.Weekday(weekStart)

	rows, err := q.Query("SELECT name FROM children ORDER BY position")
	if err != nil {
		return models.Setup{}, fmt.Errorf("failed to read children: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return models.Setup{}, err
		}
		s.Children = append(s.Children, name)
	}
	return s, rows.Err()
}

func loadPattern(q querier) (models.WeeklyPattern, error) {
	rows, err := q.Query("SELECT weekday, early_morning, morning, afternoon, night FROM weekly_pattern")
	if err != nil {
		return nil, fmt.Errorf("failed to read weekly pattern: %w", err)
	}
	defer rows.Close()

	pattern := models.WeeklyPattern{}
	for rows.Next() {
		var wd int
		var slots models.DaySlots
		if err := rows.Scan(&wd, &slots.EarlyMorning, &slots.Morning, &slots.Afternoon, &slots.Night); err != nil {
			return nil, err
		}
		pattern[time.Weekday(wd)] = slots
	}
	return pattern, rows.Err()
}

func loadExceptions(q querier) ([]models.Exception, error) {
	rows, err := q.Query(`
		SELECT id, date, early_morning, morning, afternoon, night, reason
		FROM exceptions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to read exceptions: %w", err)
	}
	defer rows.Close()

	var out []models.Exception
	for rows.Next() {
		var e models.Exception
		if err := rows.Scan(&e.ID, &e.Date, &e.Slots.EarlyMorning, &e.Slots.Morning, &e.Slots.Afternoon, &e.Slots.Night, &e.Reason); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func loadExpenses(q querier) ([]models.Expense, error) {
	rows, err := q.Query(`
		SELECT id, date, description, category, amount, paid_by, split_a, split_b
		FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to read expenses: %w", err)
	}
	defer rows.Close()

	var out []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Category, &e.Amount, &e.PaidBy, &e.SplitA, &e.SplitB); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func loadSupport(q querier) ([]models.SupportEntry, error) {
	rows, err := q.Query(`
		SELECT id, month, due_date, amount_due, amount_paid, payment_method, status
		FROM support_entries ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to read support entries: %w", err)
	}
	defer rows.Close()

	var out []models.SupportEntry
	for rows.Next() {
		var s models.SupportEntry
		if err := rows.Scan(&s.ID, &s.Month, &s.DueDate, &s.AmountDue, &s.AmountPaid, &s.PaymentMethod, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func loadTasks(q querier) ([]models.Task, error) {
	rows, err := q.Query(`
		SELECT id, title, assigned_to, due_date, status, priority
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.AssignedTo, &t.DueDate, &t.Status, &t.Priority); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func loadNotes(q querier) ([]models.Note, error) {
	rows, err := q.Query("SELECT id, date, author, content, tags FROM notes ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	defer rows.Close()

	var out []models.Note
	for rows.Next() {
		var n models.Note
		var tags string
		if err := rows.Scan(&n.ID, &n.Date, &n.Author, &n.Content, &tags); err != nil {
			return nil, err
		}
		n.Tags = models.ParseTags(tags)
		out = append(out, n)
	}
	return out, rows.Err()
}

// SaveHousehold replaces everything stored with h in a single transaction.
func SaveHousehold(db *sql.DB, ph Placeholder, h household.Household) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"setup", "children", "weekly_pattern", "exceptions", "expenses", "support_entries", "tasks", "notes"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	s := h.Setup
	if _, err := tx.Exec(ph.Rebind(`
		INSERT INTO setup (id, parent_a_name, parent_b_name, currency, start_year, week_start, is_configured)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		1, s.ParentAName, s.ParentBName, s.Currency, s.StartYear, int(s.WeekStart), s.IsConfigured); err != nil {
		return fmt.Errorf("failed to save setup: %w", err)
	}
	for i, name := range s.Children {
		if _, err := tx.Exec(ph.Rebind("INSERT INTO children (position, name) VALUES (?, ?)"), i, name); err != nil {
			return fmt.Errorf("failed to save child %q: %w", name, err)
		}
	}

	for _, wd := range models.Weekdays {
		slots, ok := h.Pattern[wd]
		if !ok {
			continue
		}
		if _, err := tx.Exec(ph.Rebind(`
			INSERT INTO weekly_pattern (weekday, early_morning, morning, afternoon, night)
			VALUES (?, ?, ?, ?, ?)`),
			int(wd), slots.EarlyMorning, slots.Morning, slots.Afternoon, slots.Night); err != nil {
			return fmt.Errorf("failed to save pattern for %s: %w", wd, err)
		}
	}

	for i, e := range h.Exceptions {
		if _, err := tx.Exec(ph.Rebind(`
			INSERT INTO exceptions (id, position, date, early_morning, morning, afternoon, night, reason)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			e.ID, i, e.Date, e.Slots.EarlyMorning, e.Slots.Morning, e.Slots.Afternoon, e.Slots.Night, e.Reason); err != nil {
			return fmt.Errorf("failed to save exception %s: %w", e.ID, err)
		}
	}

	for i, e := range h.Expenses {
		if _, err := tx.Exec(ph.Rebind(`
			INSERT INTO expenses (id, position, date, description, category, amount, paid_by, split_a, split_b)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			e.ID, i, e.Date, e.Description, e.Category, e.Amount, e.PaidBy, e.SplitA, e.SplitB); err != nil {
			return fmt.Errorf("failed to save expense %s: %w", e.ID, err)
		}
	}

	for i, s := range h.Support {
		if _, err := tx.Exec(ph.Rebind(`
			INSERT INTO support_entries (id, position, month, due_date, amount_due, amount_paid, payment_method, status)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
			s.ID, i, s.Month, s.DueDate, s.AmountDue, s.AmountPaid, s.PaymentMethod, s.Status); err != nil {
			return fmt.Errorf("failed to save support entry %s: %w", s.ID, err)
		}
	}

	for i, t := range h.Tasks {
		if _, err := tx.Exec(ph.Rebind(`
			INSERT INTO tasks (id, position, title, assigned_to, due_date, status, priority)
			VALUES (?, ?, ?, ?, ?, ?, ?)`),
			t.ID, i, t.Title, t.AssignedTo, t.DueDate, t.Status, t.Priority); err != nil {
			return fmt.Errorf("failed to save task %s: %w", t.ID, err)
		}
	}

	for i, n := range h.Notes {
		if _, err := tx.Exec(ph.Rebind(`
			INSERT INTO notes (id, position, date, author, content, tags)
			VALUES (?, ?, ?, ?, ?, ?)`),
			n.ID, i, n.Date, n.Author, n.Content, strings.Join(n.Tags, ",")); err != nil {
			return fmt.Errorf("failed to save note %s: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

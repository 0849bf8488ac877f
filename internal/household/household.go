// Package household holds the aggregate that everything else reads from.
//
// A Household is a snapshot. Commands never modify the receiver; they return
// a new Household with copied slices, so a snapshot handed to the resolver or
// the ledger stays stable while the next one is produced and saved.
package household

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/coparent/internal/constants"
	"github.com/julianstephens/coparent/internal/models"
)

// ErrNotFound is returned when a command names an id that does not exist.
var ErrNotFound = errors.New("not found")

type Household struct {
	Setup      models.Setup
	Pattern    models.WeeklyPattern
	Exceptions []models.Exception
	Expenses   []models.Expense
	Support    []models.SupportEntry
	Tasks      []models.Task
	Notes      []models.Note
}

// NewID returns a fresh entity id.
func NewID() string {
	return uuid.New().String()
}

// Default returns the state of a freshly initialized household: Monday to
// Wednesday with A, Thursday to Sunday with B.
func Default() Household {
	pattern := models.WeeklyPattern{}
	for _, wd := range models.Weekdays {
		g := models.GuardianB
		if wd == time.Monday || wd == time.Tuesday || wd == time.Wednesday {
			g = models.GuardianA
		}
		pattern[wd] = models.UniformSlots(g)
	}

	return Household{
		Setup: models.Setup{
			ParentAName: constants.DefaultParentAName,
			ParentBName: constants.DefaultParentBName,
			Children:    []string{constants.DefaultChildName},
			Currency:    constants.DefaultCurrency,
			StartYear:   constants.DefaultStartYear,
			WeekStart:   constants.DefaultWeekStart,
		},
		Pattern: pattern,
	}
}

// Clone returns a deep copy of h.
func (h Household) Clone() Household {
	out := h
	out.Setup.Children = append([]string(nil), h.Setup.Children...)
	out.Pattern = h.Pattern.Clone()
	out.Exceptions = append([]models.Exception(nil), h.Exceptions...)
	out.Expenses = append([]models.Expense(nil), h.Expenses...)
	out.Support = append([]models.SupportEntry(nil), h.Support...)
	out.Tasks = append([]models.Task(nil), h.Tasks...)
	out.Notes = make([]models.Note, len(h.Notes))
	for i, n := range h.Notes {
		n.Tags = append([]string(nil), n.Tags...)
		out.Notes[i] = n
	}
	if h.Notes == nil {
		out.Notes = nil
	}
	return out
}

// Validate checks the whole snapshot. Storage runs it after loading so an
// incomplete weekly pattern is reported up front rather than on the first
// date that needs the missing weekday.
func (h Household) Validate() error {
	if err := h.Setup.Validate(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if err := h.Pattern.Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(h.Exceptions))
	for i := range h.Exceptions {
		if err := h.Exceptions[i].Validate(); err != nil {
			return err
		}
		if seen[h.Exceptions[i].Date] {
			return fmt.Errorf("more than one exception for %s", h.Exceptions[i].Date)
		}
		seen[h.Exceptions[i].Date] = true
	}
	for i := range h.Expenses {
		if err := h.Expenses[i].Validate(); err != nil {
			return fmt.Errorf("expense %s: %w", h.Expenses[i].ID, err)
		}
	}
	for i := range h.Support {
		if err := h.Support[i].Validate(); err != nil {
			return fmt.Errorf("support %s: %w", h.Support[i].ID, err)
		}
	}
	for i := range h.Tasks {
		if err := h.Tasks[i].Validate(); err != nil {
			return fmt.Errorf("task %s: %w", h.Tasks[i].ID, err)
		}
	}
	for i := range h.Notes {
		if err := h.Notes[i].Validate(); err != nil {
			return fmt.Errorf("note %s: %w", h.Notes[i].ID, err)
		}
	}
	return nil
}

// UpdateSetup replaces the household setup and marks it configured.
func (h Household) UpdateSetup(s models.Setup) (Household, error) {
	if err := s.Validate(); err != nil {
		return h, err
	}
	out := h.Clone()
	s.Children = append([]string(nil), s.Children...)
	s.IsConfigured = true
	out.Setup = s
	return out, nil
}

// SetWeekday replaces the pattern entry for wd.
func (h Household) SetWeekday(wd time.Weekday, slots models.DaySlots) (Household, error) {
	if wd < time.Sunday || wd > time.Saturday {
		return h, fmt.Errorf("invalid weekday %d", wd)
	}
	if err := slots.Validate(); err != nil {
		return h, err
	}
	out := h.Clone()
	out.Pattern[wd] = slots
	return out, nil
}

// SetWeekdaySegment flips one segment of wd to the other guardian.
func (h Household) SetWeekdaySegment(wd time.Weekday, seg models.Segment) (Household, error) {
	slots, ok := h.Pattern[wd]
	if !ok {
		return h, fmt.Errorf("weekly pattern has no entry for %s", wd)
	}
	current := slots.Get(seg)
	if !current.Valid() {
		return h, fmt.Errorf("segment %s of %s has no guardian", seg, wd)
	}
	return h.SetWeekday(wd, slots.With(seg, current.Other()))
}

// AddException stores exc, replacing any existing exception on the same date.
func (h Household) AddException(exc models.Exception) (Household, error) {
	if exc.ID == "" {
		exc.ID = NewID()
	}
	if err := exc.Validate(); err != nil {
		return h, err
	}
	out := h.Clone()
	out.Exceptions = filter(out.Exceptions, func(e models.Exception) bool { return e.Date != exc.Date })
	out.Exceptions = append(out.Exceptions, exc)
	return out, nil
}

func (h Household) RemoveException(id string) (Household, error) {
	exceptions, err := removeByID(h.Exceptions, id, func(e models.Exception) string { return e.ID })
	if err != nil {
		return h, fmt.Errorf("exception %s: %w", id, err)
	}
	out := h.Clone()
	out.Exceptions = exceptions
	return out, nil
}

func (h Household) AddExpense(e models.Expense) (Household, error) {
	if e.ID == "" {
		e.ID = NewID()
	}
	if err := e.Validate(); err != nil {
		return h, err
	}
	out := h.Clone()
	out.Expenses = append(out.Expenses, e)
	return out, nil
}

func (h Household) RemoveExpense(id string) (Household, error) {
	expenses, err := removeByID(h.Expenses, id, func(e models.Expense) string { return e.ID })
	if err != nil {
		return h, fmt.Errorf("expense %s: %w", id, err)
	}
	out := h.Clone()
	out.Expenses = expenses
	return out, nil
}

func (h Household) AddSupport(s models.SupportEntry) (Household, error) {
	if s.ID == "" {
		s.ID = NewID()
	}
	if err := s.Validate(); err != nil {
		return h, err
	}
	out := h.Clone()
	out.Support = append(out.Support, s)
	return out, nil
}

// UpdateSupport replaces the entry with the same id.
func (h Household) UpdateSupport(s models.SupportEntry) (Household, error) {
	if err := s.Validate(); err != nil {
		return h, err
	}
	support, err := replaceByID(h.Support, s, func(e models.SupportEntry) string { return e.ID })
	if err != nil {
		return h, fmt.Errorf("support entry %s: %w", s.ID, err)
	}
	out := h.Clone()
	out.Support = support
	return out, nil
}

func (h Household) AddTask(t models.Task) (Household, error) {
	if t.ID == "" {
		t.ID = NewID()
	}
	if err := t.Validate(); err != nil {
		return h, err
	}
	out := h.Clone()
	out.Tasks = append(out.Tasks, t)
	return out, nil
}

// UpdateTask replaces the task with the same id.
func (h Household) UpdateTask(t models.Task) (Household, error) {
	if err := t.Validate(); err != nil {
		return h, err
	}
	tasks, err := replaceByID(h.Tasks, t, func(e models.Task) string { return e.ID })
	if err != nil {
		return h, fmt.Errorf("task %s: %w", t.ID, err)
	}
	out := h.Clone()
	out.Tasks = tasks
	return out, nil
}

func (h Household) RemoveTask(id string) (Household, error) {
	tasks, err := removeByID(h.Tasks, id, func(t models.Task) string { return t.ID })
	if err != nil {
		return h, fmt.Errorf("task %s: %w", id, err)
	}
	out := h.Clone()
	out.Tasks = tasks
	return out, nil
}

// AddNote prepends n so the log reads newest first.
func (h Household) AddNote(n models.Note) (Household, error) {
	if n.ID == "" {
		n.ID = NewID()
	}
	if err := n.Validate(); err != nil {
		return h, err
	}
	n.Tags = append([]string(nil), n.Tags...)
	out := h.Clone()
	out.Notes = append([]models.Note{n}, out.Notes...)
	return out, nil
}

func (h Household) RemoveNote(id string) (Household, error) {
	notes, err := removeByID(h.Notes, id, func(n models.Note) string { return n.ID })
	if err != nil {
		return h, fmt.Errorf("note %s: %w", id, err)
	}
	out := h.Clone()
	out.Notes = notes
	return out, nil
}

// FindTask returns the task with id.
func (h Household) FindTask(id string) (models.Task, error) {
	for _, t := range h.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// FindSupport returns the support entry with id.
func (h Household) FindSupport(id string) (models.SupportEntry, error) {
	for _, s := range h.Support {
		if s.ID == id {
			return s, nil
		}
	}
	return models.SupportEntry{}, fmt.Errorf("support entry %s: %w", id, ErrNotFound)
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, error) {
	out := filter(items, func(item T) bool { return idOf(item) != id })
	if len(out) == len(items) {
		return nil, ErrNotFound
	}
	return out, nil
}

func replaceByID[T any](items []T, repl T, idOf func(T) string) ([]T, error) {
	id := idOf(repl)
	out := make([]T, len(items))
	found := false
	for i, item := range items {
		if idOf(item) == id {
			out[i] = repl
			found = true
			continue
		}
		out[i] = item
	}
	if !found {
		return nil, ErrNotFound
	}
	return out, nil
}

package sqlite

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "nested", "coparent.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitSeedsDefaultHousehold(t *testing.T) {
	store := setupTestStore(t)

	h, err := store.GetHousehold()
	if err != nil {
		t.Fatalf("GetHousehold failed: %v", err)
	}
	want := household.Default()
	if !reflect.DeepEqual(h.Pattern, want.Pattern) {
		t.Errorf("pattern = %v, want %v", h.Pattern, want.Pattern)
	}
	if h.Setup.ParentAName != want.Setup.ParentAName || h.Setup.WeekStart != time.Monday {
		t.Errorf("setup = %+v", h.Setup)
	}
}

func TestInitKeepsExistingData(t *testing.T) {
	store := setupTestStore(t)

	h, _ := store.GetHousehold()
	h, err := h.AddException(models.Exception{ID: "x1", Date: "2026-03-05", Slots: models.UniformSlots(models.GuardianA), Reason: "swap"})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveHousehold(h); err != nil {
		t.Fatal(err)
	}

	if err := store.Init(); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	got, err := store.GetHousehold()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Exceptions) != 1 {
		t.Errorf("re-init dropped data: %d exceptions", len(got.Exceptions))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	h := household.Default()
	var err error
	h, err = h.UpdateSetup(models.Setup{
		ParentAName: "Sam", ParentBName: "Alex", Children: []string{"Kit", "Rue"},
		Currency: "€", StartYear: 2026, WeekStart: time.Sunday,
	})
	if err != nil {
		t.Fatal(err)
	}
	h, _ = h.SetWeekdaySegment(time.Tuesday, models.SegmentNight)
	h, _ = h.AddException(models.Exception{ID: "x1", Date: "2026-03-05", Slots: models.UniformSlots(models.GuardianA), Reason: "swap"})
	h, _ = h.AddExpense(models.Expense{
		ID: "e1", Date: "2026-03-01", Description: "Books", Category: "Education",
		Amount: decimal.RequireFromString("42.10"), PaidBy: models.GuardianB, SplitA: 60, SplitB: 40,
	})
	h, _ = h.AddSupport(models.SupportEntry{
		ID: "s1", Month: "2026-03", DueDate: "2026-03-01",
		AmountDue: decimal.NewFromInt(300), AmountPaid: decimal.NewFromInt(150),
		PaymentMethod: "Bank transfer", Status: models.SupportPartial,
	})
	h, _ = h.AddTask(models.Task{ID: "t1", Title: "Dentist form", AssignedTo: models.AssigneeBoth, DueDate: "2026-03-10", Status: models.TaskInProgress, Priority: models.PriorityHigh})
	h, _ = h.AddNote(models.Note{ID: "n1", Date: "2026-03-01 08:30", Author: models.GuardianA, Content: "Pickup moved", Tags: []string{"school", "pickup"}})

	if err := store.SaveHousehold(h); err != nil {
		t.Fatalf("SaveHousehold failed: %v", err)
	}

	got, err := store.GetHousehold()
	if err != nil {
		t.Fatalf("GetHousehold failed: %v", err)
	}

	if !reflect.DeepEqual(got.Setup, h.Setup) {
		t.Errorf("setup = %+v, want %+v", got.Setup, h.Setup)
	}
	if !reflect.DeepEqual(got.Pattern, h.Pattern) {
		t.Errorf("pattern = %v, want %v", got.Pattern, h.Pattern)
	}
	if !reflect.DeepEqual(got.Exceptions, h.Exceptions) {
		t.Errorf("exceptions = %+v, want %+v", got.Exceptions, h.Exceptions)
	}
	if len(got.Expenses) != 1 || !got.Expenses[0].Amount.Equal(h.Expenses[0].Amount) || got.Expenses[0].SplitA != 60 {
		t.Errorf("expenses = %+v", got.Expenses)
	}
	if len(got.Support) != 1 || !got.Support[0].AmountPaid.Equal(decimal.NewFromInt(150)) || got.Support[0].Status != models.SupportPartial {
		t.Errorf("support = %+v", got.Support)
	}
	if !reflect.DeepEqual(got.Tasks, h.Tasks) {
		t.Errorf("tasks = %+v, want %+v", got.Tasks, h.Tasks)
	}
	if !reflect.DeepEqual(got.Notes, h.Notes) {
		t.Errorf("notes = %+v, want %+v", got.Notes, h.Notes)
	}
}

func TestSavePreservesOrder(t *testing.T) {
	store := setupTestStore(t)

	h := household.Default()
	for _, id := range []string{"c", "a", "b"} {
		var err error
		h, err = h.AddTask(models.Task{ID: id, Title: id, AssignedTo: models.AssigneeA, Status: models.TaskTodo, Priority: models.PriorityLow})
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := store.SaveHousehold(h); err != nil {
		t.Fatal(err)
	}

	got, _ := store.GetHousehold()
	var ids []string
	for _, task := range got.Tasks {
		ids = append(ids, task.ID)
	}
	if strings.Join(ids, "") != "cab" {
		t.Errorf("task order = %v, want [c a b]", ids)
	}
}

func TestSaveRejectsIncompletePattern(t *testing.T) {
	store := setupTestStore(t)

	h := household.Default()
	delete(h.Pattern, time.Friday)
	if err := store.SaveHousehold(h); err == nil {
		t.Error("SaveHousehold should reject a pattern without Friday")
	}
}

func TestGetHouseholdDetectsIncompletePattern(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.GetDB().Exec("DELETE FROM weekly_pattern WHERE weekday = ?", int(time.Thursday)); err != nil {
		t.Fatal(err)
	}
	_, err := store.GetHousehold()
	if err == nil || !strings.Contains(err.Error(), "Thursday") {
		t.Errorf("GetHousehold error = %v, want missing Thursday", err)
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := store.Load()
	if err == nil || !strings.Contains(err.Error(), "coparent init") {
		t.Errorf("Load error = %v, want init hint", err)
	}
}

func TestLoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coparent.db")
	first := NewStore(path)
	if err := first.Init(); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second := NewStore(path)
	defer second.Close()
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := second.GetHousehold(); err != nil {
		t.Errorf("GetHousehold after Load failed: %v", err)
	}
	if second.GetConfigPath() != path {
		t.Errorf("GetConfigPath = %s, want %s", second.GetConfigPath(), path)
	}
}

func TestSchemaVersionAndPing(t *testing.T) {
	store := setupTestStore(t)

	if err := store.Ping(); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || latest < 1 {
		t.Errorf("schema version = %d/%d, want fully migrated", current, latest)
	}

	store.Close()
	if err := store.Ping(); err == nil {
		t.Error("Ping on a closed store should fail")
	}
}

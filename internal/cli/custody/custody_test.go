package custody

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/models"
	"github.com/julianstephens/coparent/internal/schedule"
	"github.com/julianstephens/coparent/internal/storage/sqlite"
	"github.com/julianstephens/coparent/internal/utils"
)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "coparent.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:    store,
		Resolver: schedule.New(utils.Gregorian{}),
		Out:      out,
		Now:      func() time.Time { return time.Date(2026, 3, 3, 9, 30, 0, 0, time.Local) },
	}, out
}

func TestScheduleShow(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ScheduleShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected header plus 7 weekdays, got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "Monday") {
		t.Errorf("week should start on Monday, got %q", lines[1])
	}
	if !strings.Contains(lines[7], "Sunday") || !strings.Contains(lines[7], "Parent B") {
		t.Errorf("unexpected Sunday row %q", lines[7])
	}
}

func TestScheduleSetAndToggle(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ScheduleSetCmd{Weekday: "fri", Slots: "a"}).Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Friday set to AAAA") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out.Reset()
	if err := (&ScheduleToggleCmd{Weekday: "tuesday", Segment: "night"}).Run(ctx); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "Tuesday Night is now with Parent B") {
		t.Errorf("unexpected output:\n%s", out)
	}

	h, err := ctx.Household()
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Pattern[time.Friday].String(); got != "AAAA" {
		t.Errorf("Friday = %s, want AAAA", got)
	}
	if got := h.Pattern[time.Tuesday].String(); got != "AAAB" {
		t.Errorf("Tuesday = %s, want AAAB", got)
	}
}

func TestScheduleSetRejectsBadInput(t *testing.T) {
	ctx, _ := setupTestContext(t)

	tests := []struct {
		name string
		cmd  ScheduleSetCmd
	}{
		{name: "weekday", cmd: ScheduleSetCmd{Weekday: "someday", Slots: "A"}},
		{name: "slots", cmd: ScheduleSetCmd{Weekday: "mon", Slots: "AB"}},
		{name: "guardian", cmd: ScheduleSetCmd{Weekday: "mon", Slots: "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestExceptionLifecycle(t *testing.T) {
	ctx, out := setupTestContext(t)

	add := &ExceptionAddCmd{Date: "2026-03-02", Slots: "B", Reason: "Swap for conference"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Added override for Monday 2026-03-02") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out.Reset()
	add = &ExceptionAddCmd{Date: "2026-03-02", Slots: "AABB"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Replaced override") {
		t.Errorf("same-date add should replace:\n%s", out)
	}

	h, err := ctx.Household()
	if err != nil {
		t.Fatal(err)
	}
	if len(h.Exceptions) != 1 {
		t.Fatalf("expected 1 exception, got %d", len(h.Exceptions))
	}
	if got := h.Exceptions[0].Slots.String(); got != "AABB" {
		t.Errorf("slots = %s, want AABB", got)
	}

	out.Reset()
	if err := (&ExceptionListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "2026-03-02") || !strings.Contains(out.String(), h.Exceptions[0].ID) {
		t.Errorf("list missing exception:\n%s", out)
	}

	out.Reset()
	if err := (&ExceptionListCmd{From: "2026-04-01"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No overrides found.") {
		t.Errorf("--from should filter earlier overrides:\n%s", out)
	}

	if err := (&ExceptionRemoveCmd{ID: h.Exceptions[0].ID}).Run(ctx); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := (&ExceptionRemoveCmd{ID: h.Exceptions[0].ID}).Run(ctx); err == nil {
		t.Error("removing twice should fail")
	}
}

func TestExceptionListSortedByDate(t *testing.T) {
	ctx, out := setupTestContext(t)

	for _, add := range []ExceptionAddCmd{
		{Date: "2026-03-02", Slots: "B", Reason: "first"},
		{Date: "2026-03-20", Slots: "A", Reason: "last"},
		{Date: "2026-03-10", Slots: "B", Reason: "middle"},
		// replacing moves the stored entry to the end
		{Date: "2026-03-02", Slots: "AABB", Reason: "first again"},
	} {
		if err := add.Run(ctx); err != nil {
			t.Fatalf("add %s failed: %v", add.Date, err)
		}
	}

	out.Reset()
	if err := (&ExceptionListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := out.String()

	dates := []string{"2026-03-02", "2026-03-10", "2026-03-20"}
	last := -1
	for _, d := range dates {
		i := strings.Index(got, d)
		if i < 0 {
			t.Fatalf("list missing %s:\n%s", d, got)
		}
		if i < last {
			t.Errorf("%s listed out of date order:\n%s", d, got)
		}
		last = i
	}
}

func TestCalendarMonth(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ExceptionAddCmd{Date: "2026-03-02", Slots: "B"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	if err := (&CalendarMonthCmd{Month: "2026-03"}).Run(ctx); err != nil {
		t.Fatalf("month failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "March 2026") {
		t.Errorf("missing title:\n%s", got)
	}
	// Mon-Wed with A gives 14 days in March 2026; one Monday is overridden.
	if !strings.Contains(got, "Parent A: 13 days") || !strings.Contains(got, "Parent B: 18 days") {
		t.Errorf("unexpected counts:\n%s", got)
	}
	if !strings.Contains(got, "overrides: 1") {
		t.Errorf("override not counted:\n%s", got)
	}
}

func TestCalendarMonthDefaultsToCurrent(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&CalendarMonthCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "March 2026") {
		t.Errorf("expected the current month:\n%s", out)
	}
}

func TestCalendarMonthRejectsBadMonth(t *testing.T) {
	ctx, _ := setupTestContext(t)
	if err := (&CalendarMonthCmd{Month: "March"}).Run(ctx); err == nil {
		t.Error("expected an error for a malformed month")
	}
}

func TestCalendarYear(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&CalendarYearCmd{Year: 2026}).Run(ctx); err != nil {
		t.Fatalf("year failed: %v", err)
	}
	got := out.String()
	for _, m := range []string{"January", "December", "Total"} {
		if !strings.Contains(got, m) {
			t.Errorf("missing %q:\n%s", m, got)
		}
	}
	// 2026 has 52 each of Mon/Tue/Wed and 53 Thursdays.
	if !strings.Contains(got, "156") || !strings.Contains(got, "209") {
		t.Errorf("unexpected yearly totals:\n%s", got)
	}
}

func TestCalendarDay(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&ExceptionAddCmd{Date: "2026-03-03", Slots: "AABB", Reason: "Late pickup"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()

	if err := (&CalendarDayCmd{Date: "today"}).Run(ctx); err != nil {
		t.Fatalf("day failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Tuesday 2026-03-03") {
		t.Errorf("missing title:\n%s", got)
	}
	if !strings.Contains(got, "Parent B ("+string(models.GuardianB)+")") {
		t.Errorf("afternoon/night should be with B:\n%s", got)
	}
	if !strings.Contains(got, "Late pickup") {
		t.Errorf("missing override reason:\n%s", got)
	}
}

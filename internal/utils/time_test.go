package utils

import (
	"testing"
	"time"
)

func TestGregorianDays(t *testing.T) {
	cal := Gregorian{}

	tests := []struct {
		name      string
		start     string
		end       string
		wantLen   int
		wantFirst string
		wantLast  string
	}{
		{name: "single day", start: "2026-03-05", end: "2026-03-05", wantLen: 1, wantFirst: "2026-03-05", wantLast: "2026-03-05"},
		{name: "february leap year", start: "2028-02-01", end: "2028-02-29", wantLen: 29, wantFirst: "2028-02-01", wantLast: "2028-02-29"},
		{name: "across year end", start: "2025-12-30", end: "2026-01-02", wantLen: 4, wantFirst: "2025-12-30", wantLast: "2026-01-02"},
		{name: "whole year", start: "2026-01-01", end: "2026-12-31", wantLen: 365, wantFirst: "2026-01-01", wantLast: "2026-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := ParseDate(tt.start)
			end, _ := ParseDate(tt.end)
			days := cal.Days(start, end)
			if len(days) != tt.wantLen {
				t.Fatalf("Days() returned %d days, want %d", len(days), tt.wantLen)
			}
			if got := FormatDate(days[0]); got != tt.wantFirst {
				t.Errorf("first day = %s, want %s", got, tt.wantFirst)
			}
			if got := FormatDate(days[len(days)-1]); got != tt.wantLast {
				t.Errorf("last day = %s, want %s", got, tt.wantLast)
			}
		})
	}
}

func TestGregorianDays_Inverted(t *testing.T) {
	start, _ := ParseDate("2026-03-05")
	end, _ := ParseDate("2026-03-01")
	if days := (Gregorian{}).Days(start, end); days != nil {
		t.Errorf("Days() = %v, want nil for inverted range", days)
	}
}

func TestGregorianDays_DSTLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// US DST starts 2026-03-08
	start := time.Date(2026, 3, 7, 23, 30, 0, 0, loc)
	end := time.Date(2026, 3, 9, 0, 15, 0, 0, loc)
	days := (Gregorian{}).Days(start, end)
	want := []string{"2026-03-07", "2026-03-08", "2026-03-09"}
	if len(days) != len(want) {
		t.Fatalf("Days() returned %d days, want %d", len(days), len(want))
	}
	for i, d := range days {
		if FormatDate(d) != want[i] {
			t.Errorf("day %d = %s, want %s", i, FormatDate(d), want[i])
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	thu, _ := ParseDate("2026-03-05")

	if got := FormatDate(StartOfWeek(thu, time.Monday)); got != "2026-03-02" {
		t.Errorf("StartOfWeek(Monday) = %s, want 2026-03-02", got)
	}
	if got := FormatDate(StartOfWeek(thu, time.Sunday)); got != "2026-03-01" {
		t.Errorf("StartOfWeek(Sunday) = %s, want 2026-03-01", got)
	}
	if got := FormatDate(EndOfWeek(thu, time.Monday)); got != "2026-03-08" {
		t.Errorf("EndOfWeek(Monday) = %s, want 2026-03-08", got)
	}
	mon, _ := ParseDate("2026-03-02")
	if got := FormatDate(StartOfWeek(mon, time.Monday)); got != "2026-03-02" {
		t.Errorf("StartOfWeek on the week start itself = %s, want 2026-03-02", got)
	}
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(2026, time.February)
	if FormatDate(first) != "2026-02-01" || FormatDate(last) != "2026-02-28" {
		t.Errorf("MonthBounds(2026, Feb) = %s..%s", FormatDate(first), FormatDate(last))
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{input: "thursday", want: time.Thursday},
		{input: "Thu", want: time.Thursday},
		{input: "0", want: time.Sunday},
		{input: "7", wantErr: true},
		{input: "someday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("ParseMonth failed: %v", err)
	}
	if m.Month() != time.March || m.Day() != 1 {
		t.Errorf("ParseMonth = %v", m)
	}
	if _, err := ParseMonth("2026-13"); err == nil {
		t.Error("ParseMonth accepted month 13")
	}
}

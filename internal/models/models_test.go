package models

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func fullPattern() WeeklyPattern {
	p := WeeklyPattern{}
	for _, wd := range Weekdays {
		p[wd] = UniformSlots(GuardianA)
	}
	return p
}

func TestParseDaySlots(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DaySlots
		wantErr bool
	}{
		{name: "single guardian", input: "b", want: UniformSlots(GuardianB)},
		{name: "four segments", input: "AABB", want: DaySlots{GuardianA, GuardianA, GuardianB, GuardianB}},
		{name: "whitespace", input: "  abab ", want: DaySlots{GuardianA, GuardianB, GuardianA, GuardianB}},
		{name: "bad letter", input: "AAXB", wantErr: true},
		{name: "wrong length", input: "AB", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDaySlots(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDaySlots(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDaySlots(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDaySlots_GetAndWith(t *testing.T) {
	slots := UniformSlots(GuardianA).With(SegmentNight, GuardianB)
	if slots.Get(SegmentNight) != GuardianB {
		t.Errorf("night = %q, want B", slots.Get(SegmentNight))
	}
	for _, seg := range []Segment{SegmentEarlyMorning, SegmentMorning, SegmentAfternoon} {
		if slots.Get(seg) != GuardianA {
			t.Errorf("%s = %q, want A", seg, slots.Get(seg))
		}
	}
	if slots.String() != "AAAB" {
		t.Errorf("String() = %q, want AAAB", slots.String())
	}
	if slots.Get(Segment("lunch")) != GuardianNone {
		t.Error("unknown segment should resolve to no guardian")
	}
}

func TestWeeklyPattern_Validate(t *testing.T) {
	t.Run("complete pattern", func(t *testing.T) {
		if err := fullPattern().Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing weekday", func(t *testing.T) {
		p := fullPattern()
		delete(p, time.Thursday)
		err := p.Validate()
		if err == nil {
			t.Fatal("Validate() = nil, want error for missing Thursday")
		}
		if !strings.Contains(err.Error(), "Thursday") {
			t.Errorf("error %q does not name Thursday", err)
		}
		if got := p.MissingWeekdays(); !reflect.DeepEqual(got, []time.Weekday{time.Thursday}) {
			t.Errorf("MissingWeekdays() = %v", got)
		}
	})

	t.Run("invalid guardian", func(t *testing.T) {
		p := fullPattern()
		p[time.Monday] = DaySlots{GuardianA, "C", GuardianA, GuardianA}
		if err := p.Validate(); err == nil {
			t.Error("Validate() = nil, want error for guardian C")
		}
	})

	t.Run("clone is independent", func(t *testing.T) {
		p := fullPattern()
		c := p.Clone()
		c[time.Monday] = UniformSlots(GuardianB)
		if p[time.Monday] != UniformSlots(GuardianA) {
			t.Error("mutating clone changed the original")
		}
	})
}

func TestExpense_Validate(t *testing.T) {
	valid := Expense{
		ID:          "e1",
		Date:        "2026-03-01",
		Description: "Shoes",
		Category:    "Clothing",
		Amount:      decimal.RequireFromString("49.99"),
		PaidBy:      GuardianA,
		SplitA:      50,
		SplitB:      50,
	}

	tests := []struct {
		name    string
		mutate  func(e *Expense)
		wantErr bool
	}{
		{name: "valid", mutate: func(e *Expense) {}},
		{name: "negative amount", mutate: func(e *Expense) { e.Amount = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "split does not total 100", mutate: func(e *Expense) { e.SplitB = 40 }, wantErr: true},
		{name: "bad payer", mutate: func(e *Expense) { e.PaidBy = "C" }, wantErr: true},
		{name: "bad date", mutate: func(e *Expense) { e.Date = "03/01/2026" }, wantErr: true},
		{name: "empty description", mutate: func(e *Expense) { e.Description = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSupportEntry_Validate(t *testing.T) {
	entry := SupportEntry{
		ID:         "s1",
		Month:      "2026-03",
		DueDate:    "2026-03-05",
		AmountDue:  decimal.NewFromInt(200),
		AmountPaid: decimal.Zero,
		Status:     SupportUnpaid,
	}
	if err := entry.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	entry.Status = "late"
	if err := entry.Validate(); err == nil {
		t.Error("Validate() accepted unknown status")
	}
}

func TestSetup_Validate(t *testing.T) {
	s := Setup{ParentAName: "Ana", ParentBName: "Ben", Children: []string{"Kim"}, WeekStart: time.Monday}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if s.Name(GuardianB) != "Ben" {
		t.Errorf("Name(B) = %q, want Ben", s.Name(GuardianB))
	}

	s.Children = nil
	if err := s.Validate(); err == nil {
		t.Error("Validate() accepted a household with no children")
	}

	s.Children = []string{"Kim"}
	s.WeekStart = time.Wednesday
	if err := s.Validate(); err == nil {
		t.Error("Validate() accepted Wednesday as week start")
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags(" school, ,medical,")
	want := []string{"school", "medical"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTags() = %v, want %v", got, want)
	}
	if ParseTags("") != nil {
		t.Error("ParseTags(\"\") should be nil")
	}
}

func TestGuardian(t *testing.T) {
	if GuardianA.Other() != GuardianB || GuardianB.Other() != GuardianA {
		t.Error("Other() should swap A and B")
	}
	if _, err := ParseGuardian("c"); err == nil {
		t.Error("ParseGuardian(c) should fail")
	}
	g, err := ParseGuardian(" b ")
	if err != nil || g != GuardianB {
		t.Errorf("ParseGuardian(b) = %q, %v", g, err)
	}
}

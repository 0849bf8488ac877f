package models

import (
	"fmt"
	"strings"
)

// Segment is one of the four named parts of a custody day.
type Segment string

const (
	SegmentEarlyMorning Segment = "early_morning"
	SegmentMorning      Segment = "morning"
	SegmentAfternoon    Segment = "afternoon"
	SegmentNight        Segment = "night"
)

// Segments lists the segments in display order.
var Segments = []Segment{SegmentEarlyMorning, SegmentMorning, SegmentAfternoon, SegmentNight}

// ParseSegment accepts the canonical names plus a few short forms.
func ParseSegment(s string) (Segment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "early_morning", "early-morning", "earlymorning", "early":
		return SegmentEarlyMorning, nil
	case "morning", "am":
		return SegmentMorning, nil
	case "afternoon", "pm":
		return SegmentAfternoon, nil
	case "night", "evening":
		return SegmentNight, nil
	default:
		return "", fmt.Errorf("invalid segment %q", s)
	}
}

// DaySlots assigns a guardian to each segment of a day. Segments are independent.
type DaySlots struct {
	EarlyMorning Guardian `json:"early_morning"`
	Morning      Guardian `json:"morning"`
	Afternoon    Guardian `json:"afternoon"`
	Night        Guardian `json:"night"`
}

// UniformSlots gives every segment to g.
func UniformSlots(g Guardian) DaySlots {
	return DaySlots{EarlyMorning: g, Morning: g, Afternoon: g, Night: g}
}

// Get returns the guardian for seg. An unknown segment yields GuardianNone.
func (d DaySlots) Get(seg Segment) Guardian {
	switch seg {
	case SegmentEarlyMorning:
		return d.EarlyMorning
	case SegmentMorning:
		return d.Morning
	case SegmentAfternoon:
		return d.Afternoon
	case SegmentNight:
		return d.Night
	default:
		return GuardianNone
	}
}

// With returns a copy of d with seg assigned to g.
func (d DaySlots) With(seg Segment, g Guardian) DaySlots {
	switch seg {
	case SegmentEarlyMorning:
		d.EarlyMorning = g
	case SegmentMorning:
		d.Morning = g
	case SegmentAfternoon:
		d.Afternoon = g
	case SegmentNight:
		d.Night = g
	}
	return d
}

// Validate checks that every segment names A or B.
func (d DaySlots) Validate() error {
	for _, seg := range Segments {
		if g := d.Get(seg); !g.Valid() {
			return fmt.Errorf("segment %s has invalid guardian %q", seg, g)
		}
	}
	return nil
}

// String renders the slots compactly in segment order, e.g. "AABB".
func (d DaySlots) String() string {
	var b strings.Builder
	for _, seg := range Segments {
		g := d.Get(seg)
		if g == GuardianNone {
			b.WriteByte('-')
			continue
		}
		b.WriteString(string(g))
	}
	return b.String()
}

// ParseDaySlots parses either a single guardian ("A") applied to all segments
// or four guardians in segment order ("AABB").
func ParseDaySlots(s string) (DaySlots, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch len(s) {
	case 1:
		g, err := ParseGuardian(s)
		if err != nil {
			return DaySlots{}, err
		}
		return UniformSlots(g), nil
	case len(Segments):
		var d DaySlots
		for i, seg := range Segments {
			g, err := ParseGuardian(s[i : i+1])
			if err != nil {
				return DaySlots{}, fmt.Errorf("segment %s: %w", seg, err)
			}
			d = d.With(seg, g)
		}
		return d, nil
	default:
		return DaySlots{}, fmt.Errorf("invalid slots %q (expected A, B, or four letters like AABB)", s)
	}
}

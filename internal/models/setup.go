package models

import (
	"fmt"
	"strings"
	"time"
)

// Setup holds household configuration used for display only.
type Setup struct {
	ParentAName  string       `json:"parent_a_name"`
	ParentBName  string       `json:"parent_b_name"`
	Children     []string     `json:"children"`
	Currency     string       `json:"currency"`
	StartYear    int          `json:"start_year"`
	WeekStart    time.Weekday `json:"week_start"` // Monday or Sunday
	IsConfigured bool         `json:"is_configured"`
}

func (s *Setup) Validate() error {
	if strings.TrimSpace(s.ParentAName) == "" || strings.TrimSpace(s.ParentBName) == "" {
		return fmt.Errorf("both parent names are required")
	}
	if len(s.Children) == 0 {
		return fmt.Errorf("at least one child is required")
	}
	if s.WeekStart != time.Monday && s.WeekStart != time.Sunday {
		return fmt.Errorf("week start must be Monday or Sunday, got %s", s.WeekStart)
	}
	return nil
}

// Name returns the display name for g.
func (s *Setup) Name(g Guardian) string {
	switch g {
	case GuardianA:
		return s.ParentAName
	case GuardianB:
		return s.ParentBName
	default:
		return ""
	}
}

package models

import (
	"fmt"
	"time"
)

// Exception overrides the weekly pattern for a single calendar date. At most
// one exception exists per date.
type Exception struct {
	ID     string   `json:"id"`
	Date   string   `json:"date"` // YYYY-MM-DD
	Slots  DaySlots `json:"slots"`
	Reason string   `json:"reason"`
}

func (e *Exception) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("exception id cannot be empty")
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("invalid exception date (expected YYYY-MM-DD): %w", err)
	}
	if err := e.Slots.Validate(); err != nil {
		return fmt.Errorf("exception %s: %w", e.Date, err)
	}
	return nil
}

package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SupportStatus is the caller-supplied state of a child-support entry.
type SupportStatus string

const (
	SupportPaid    SupportStatus = "paid"
	SupportPartial SupportStatus = "partial"
	SupportUnpaid  SupportStatus = "unpaid"
)

func (s SupportStatus) Valid() bool {
	switch s {
	case SupportPaid, SupportPartial, SupportUnpaid:
		return true
	}
	return false
}

// SupportEntry records a scheduled child-support payment for one month.
// Status is authoritative; the amounts are informational.
type SupportEntry struct {
	ID            string          `json:"id"`
	Month         string          `json:"month"`    // YYYY-MM
	DueDate       string          `json:"due_date"` // YYYY-MM-DD
	AmountDue     decimal.Decimal `json:"amount_due"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentMethod string          `json:"payment_method"`
	Status        SupportStatus   `json:"status"`
}

func (s *SupportEntry) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("support entry id cannot be empty")
	}
	if _, err := time.Parse("2006-01", s.Month); err != nil {
		return fmt.Errorf("invalid support month (expected YYYY-MM): %w", err)
	}
	if _, err := time.Parse("2006-01-02", s.DueDate); err != nil {
		return fmt.Errorf("invalid due date (expected YYYY-MM-DD): %w", err)
	}
	if s.AmountDue.IsNegative() || s.AmountPaid.IsNegative() {
		return fmt.Errorf("support amounts cannot be negative")
	}
	if !s.Status.Valid() {
		return fmt.Errorf("invalid support status %q", s.Status)
	}
	return nil
}

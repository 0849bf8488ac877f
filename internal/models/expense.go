package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a shared cost paid by one guardian and split by percentage.
type Expense struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	PaidBy      Guardian        `json:"paid_by"`
	SplitA      int             `json:"split_a"` // percent
	SplitB      int             `json:"split_b"` // percent
}

// Common expense categories offered by the CLI. Category stays free text.
var ExpenseCategories = []string{
	"Education", "Medical", "Clothing", "Activities", "Food", "Childcare", "Other",
}

// Validate is the form-layer check run before an expense enters the ledger.
// The ledger itself never validates.
func (e *Expense) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("expense id cannot be empty")
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("invalid expense date (expected YYYY-MM-DD): %w", err)
	}
	if e.Description == "" {
		return fmt.Errorf("expense description cannot be empty")
	}
	if e.Amount.IsNegative() {
		return fmt.Errorf("expense amount cannot be negative")
	}
	if !e.PaidBy.Valid() {
		return fmt.Errorf("invalid payer %q", e.PaidBy)
	}
	if e.SplitA < 0 || e.SplitB < 0 {
		return fmt.Errorf("split percentages cannot be negative")
	}
	if e.SplitA+e.SplitB != 100 {
		return fmt.Errorf("split must total 100%% (got %d%% + %d%%)", e.SplitA, e.SplitB)
	}
	return nil
}

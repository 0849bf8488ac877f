// Package ledger aggregates shared expenses and child-support entries.
//
// Every function recomputes from the entries it is given. Nothing is cached
// and nothing is validated: negative amounts and splits that do not total 100
// are summed as given.
package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/coparent/internal/models"
)

var hundred = decimal.NewFromInt(100)

// ExpenseBalance is the result of ComputeExpenseBalance.
//
// OwedToA is what B owes A for expenses A paid; OwedToB is what A owes B for
// expenses B paid. NetBalance = OwedToA - OwedToB, so a positive balance means
// B owes A and a negative one means A owes B.
type ExpenseBalance struct {
	TotalAmount decimal.Decimal
	OwedToA     decimal.Decimal
	OwedToB     decimal.Decimal
	NetBalance  decimal.Decimal
	// Owing is the guardian who owes money, or GuardianNone when settled.
	Owing models.Guardian
}

// Settled reports whether the net balance is exactly zero.
func (b ExpenseBalance) Settled() bool {
	return b.NetBalance.IsZero()
}

// Amount is the absolute net balance.
func (b ExpenseBalance) Amount() decimal.Decimal {
	return b.NetBalance.Abs()
}

// ComputeExpenseBalance totals the expenses and nets what each guardian owes
// the other. Entries whose payer is neither A nor B count toward the total
// only.
func ComputeExpenseBalance(entries []models.Expense) ExpenseBalance {
	b := ExpenseBalance{
		TotalAmount: decimal.Zero,
		OwedToA:     decimal.Zero,
		OwedToB:     decimal.Zero,
	}

	for _, e := range entries {
		b.TotalAmount = b.TotalAmount.Add(e.Amount)
		switch e.PaidBy {
		case models.GuardianA:
			b.OwedToA = b.OwedToA.Add(share(e.Amount, e.SplitB))
		case models.GuardianB:
			b.OwedToB = b.OwedToB.Add(share(e.Amount, e.SplitA))
		}
	}

	b.NetBalance = b.OwedToA.Sub(b.OwedToB)
	switch b.NetBalance.Sign() {
	case 1:
		b.Owing = models.GuardianB
	case -1:
		b.Owing = models.GuardianA
	default:
		b.Owing = models.GuardianNone
	}
	return b
}

func share(amount decimal.Decimal, percent int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(percent))).Div(hundred)
}

// SupportSummary is the result of ComputeSupportSummary. Outstanding is
// TotalDue - TotalPaid and may be negative on overpayment.
type SupportSummary struct {
	TotalDue    decimal.Decimal
	TotalPaid   decimal.Decimal
	Outstanding decimal.Decimal
	// UnpaidCount counts entries whose status is anything other than paid.
	UnpaidCount int
}

// ComputeSupportSummary sums amounts and counts entries not marked paid. The
// count goes by status alone; amounts do not affect it.
func ComputeSupportSummary(entries []models.SupportEntry) SupportSummary {
	s := SupportSummary{TotalDue: decimal.Zero, TotalPaid: decimal.Zero}
	for _, e := range entries {
		s.TotalDue = s.TotalDue.Add(e.AmountDue)
		s.TotalPaid = s.TotalPaid.Add(e.AmountPaid)
		if e.Status != models.SupportPaid {
			s.UnpaidCount++
		}
	}
	s.Outstanding = s.TotalDue.Sub(s.TotalPaid)
	return s
}

// CategoryTotal is the summed amount for one expense category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	Count    int
}

// CategoryTotals groups expenses by category, sorted by category name.
func CategoryTotals(entries []models.Expense) []CategoryTotal {
	byCategory := make(map[string]*CategoryTotal)
	for _, e := range entries {
		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &CategoryTotal{Category: e.Category, Total: decimal.Zero}
			byCategory[e.Category] = ct
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++
	}

	out := make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

// DeriveSupportStatus computes the status implied by the amounts. It is used
// to fill in a status the user left blank and to flag stored entries whose
// status disagrees with their amounts.
func DeriveSupportStatus(due, paid decimal.Decimal) models.SupportStatus {
	switch {
	case paid.GreaterThanOrEqual(due):
		return models.SupportPaid
	case paid.IsPositive():
		return models.SupportPartial
	default:
		return models.SupportUnpaid
	}
}

// Mismatch is a support entry whose stored status differs from the one
// derived from its amounts.
type Mismatch struct {
	Entry   models.SupportEntry
	Derived models.SupportStatus
}

// StatusMismatches returns entries whose status disagrees with their amounts,
// in input order.
func StatusMismatches(entries []models.SupportEntry) []Mismatch {
	var out []Mismatch
	for _, e := range entries {
		if d := DeriveSupportStatus(e.AmountDue, e.AmountPaid); d != e.Status {
			out = append(out, Mismatch{Entry: e, Derived: d})
		}
	}
	return out
}

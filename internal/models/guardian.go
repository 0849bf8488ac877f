package models

import (
	"fmt"
	"strings"
)

// Guardian identifies one of the two configured parents. Display names are
// looked up from Setup and never stored on entities.
type Guardian string

const (
	GuardianA Guardian = "A"
	GuardianB Guardian = "B"
	// GuardianNone is used where no guardian applies, e.g. a settled balance.
	GuardianNone Guardian = ""
)

// Valid reports whether g is A or B.
func (g Guardian) Valid() bool {
	return g == GuardianA || g == GuardianB
}

// Other returns the opposite guardian. GuardianNone maps to itself.
func (g Guardian) Other() Guardian {
	switch g {
	case GuardianA:
		return GuardianB
	case GuardianB:
		return GuardianA
	default:
		return GuardianNone
	}
}

// ParseGuardian accepts "a", "b", "A", "B".
func ParseGuardian(s string) (Guardian, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return GuardianA, nil
	case "B":
		return GuardianB, nil
	default:
		return GuardianNone, fmt.Errorf("invalid guardian %q (expected A or B)", s)
	}
}

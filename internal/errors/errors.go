package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/logger"
	"github.com/julianstephens/coparent/internal/schedule"
)

// Format formats an error message with a consistent "Error: " prefix and, for
// errors the user can act on, a hint line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n  hint: " + hint
	}
	return msg
}

// Hint suggests a next step for known error types.
func Hint(err error) string {
	var cfgErr *schedule.ConfigurationError
	switch {
	case stderrors.As(err, &cfgErr):
		return fmt.Sprintf("set it with 'coparent schedule set %s <slots>'", cfgErr.Weekday)
	case stderrors.Is(err, household.ErrNotFound):
		return "list ids with the matching 'list' command"
	default:
		return ""
	}
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/mayflyapp/mayfly/internal/logger"
	"github.com/mayflyapp/mayfly/internal/storage"
)

// Format formats an error message with a consistent "Error: " prefix.
// Domain errors get a hint line telling the user what to do next.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a follow-up suggestion for known domain errors, or "".
func Hint(err error) string {
	switch {
	case stderrors.Is(err, storage.ErrMaxPriorityExceeded):
		return "complete a priority todo or run 'mayfly todo priority <id> --off' first"
	case stderrors.Is(err, storage.ErrNotFound):
		return "run 'mayfly habit list' or 'mayfly todo list' to see ids"
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

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}

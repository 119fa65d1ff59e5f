package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/daycard/internal/logger"
)

// Error kinds shared by the schedule, mutator and ingest packages. Callers
// wrap them with fmt.Errorf("...: %w", Err...) and test with errors.Is.
var (
	// ErrValidation marks an edit or row that is missing a required field.
	ErrValidation = stderrors.New("validation failed")
	// ErrLookup marks an update that found no existing slot to modify.
	ErrLookup = stderrors.New("no matching slot")
	// ErrPersistence marks a rejected backing-store call.
	ErrPersistence = stderrors.New("persistence failed")
	// ErrParse marks an input file that could not be read as a table.
	ErrParse = stderrors.New("could not parse input")
	// ErrConflict marks an edit that would give two saved slots the same day or date.
	ErrConflict = stderrors.New("conflicts with an existing slot")
	// ErrNotSaved is returned when clearing a slot that only exists as a template.
	ErrNotSaved = stderrors.New("not saved yet")
	// ErrNothingToClear is returned when clearing a slot without a date or content.
	ErrNothingToClear = stderrors.New("nothing to clear")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// IsUserFacing reports whether err is one of the recoverable kinds that
// should be shown to the admin as-is rather than logged as a failure.
func IsUserFacing(err error) bool {
	for _, kind := range []error{ErrValidation, ErrLookup, ErrConflict, ErrNotSaved, ErrNothingToClear} {
		if stderrors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		if !IsUserFacing(err) {
			logger.Error("Command execution failed", "error", err)
		}
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

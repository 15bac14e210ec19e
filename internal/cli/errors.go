package cli

import (
	"errors"
)

// Exit codes returned by the pagegen binary.
const (
	ExitSuccess = 0
	// ExitFailure covers invalid documents, migration errors, refused
	// overwrites and I/O failures.
	ExitFailure = 1
	// ExitUsage reports bad arguments or flags.
	ExitUsage = 2
)

var (
	// ErrValidationFailed is returned when a document has validation errors.
	ErrValidationFailed = errors.New("validation failed")
	// ErrMigrationFailed is returned when migration recorded errors.
	ErrMigrationFailed = errors.New("migration finished with errors")
	// ErrOverwriteDenied is returned when the user declines to replace an
	// existing output file.
	ErrOverwriteDenied = errors.New("overwrite denied")
)

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// IsUsageError reports whether err came from argument or flag parsing.
func IsUsageError(err error) bool {
	var target usageError
	return errors.As(err, &target)
}

// ExitCodeForError maps a command error to a process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsUsageError(err):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// reported reports whether err was already surfaced through a report.
func reported(err error) bool {
	return errors.Is(err, ErrValidationFailed) || errors.Is(err, ErrMigrationFailed)
}

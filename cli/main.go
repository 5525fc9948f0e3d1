package cli

import (
	"errors"
	"github.com/saylorsolutions/unit"
	"github.com/saylorsolutions/unit/assert"
	"os"
	"path/filepath"
)

// Main runs an [App] for reg with the process arguments, and exits with the status from [ExitCode].
func Main(reg *unit.Registry) {
	app := New(filepath.Base(os.Args[0]), reg)
	err := app.Exec(os.Args[1:])
	var usage *UsageError
	switch {
	case err == nil, errors.Is(err, ErrFailed), errors.Is(err, assert.ErrFatal), errors.As(err, &usage):
		// Already reported.
	default:
		app.printer.Println("Error:", err)
	}
	os.Exit(ExitCode(err))
}

// ExitCode maps an error from [App.Exec] to a process exit status.
// Success is 0, a [UsageError] is 2, and anything else is 1.
func ExitCode(err error) int {
	var usage *UsageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &usage):
		return 2
	default:
		return 1
	}
}

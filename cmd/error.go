package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ExitError requests termination with a specific exit code. If Cause is nil,
// the process exits without printing anything.
type ExitError struct {
	// Code is the exit code.
	Code int
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements error.Error.
func (e *ExitError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Cause.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// Warning prints a warning message to standard error.
func Warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// Error prints an error message to standard error.
func Error(err error) {
	fmt.Fprintln(color.Error, color.RedString("Error:"), err)
}

// exitCode determines the exit code for an error and whether or not the error
// should be printed.
func exitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Cause != nil
	}
	return 1, true
}

// Fatal prints an error message to standard error and then terminates the
// process with an error exit code.
func Fatal(err error) {
	code, report := exitCode(err)
	if report {
		Error(err)
	}
	os.Exit(code)
}

// Mainify adapts an error-returning entry point to Cobra's Run signature. The
// entry point's deferred cleanup runs before any exit, and a returned error is
// passed to Fatal, so an *ExitError controls the exit code.
func Mainify(entry func(*cobra.Command, []string) error) func(*cobra.Command, []string) {
	return func(command *cobra.Command, arguments []string) {
		if err := entry(command, arguments); err != nil {
			Fatal(err)
		}
	}
}

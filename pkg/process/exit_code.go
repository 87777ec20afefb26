package process

import (
	"os/exec"

	"github.com/pkg/errors"
)

const (
	// ExitCodeSuccess is the exit code of a successful process.
	ExitCodeSuccess = 0
	// ExitCodeFailure is the generic failure exit code.
	ExitCodeFailure = 1

	// posixShellInvalidCommandExitCode is the exit code returned by POSIX
	// shells when the provided command can't be executed, e.g. due to a file
	// without executable permissions.
	posixShellInvalidCommandExitCode = 126
	// posixShellCommandNotFoundExitCode is the exit code returned by POSIX
	// shells when the provided command isn't found.
	posixShellCommandNotFoundExitCode = 127
)

// ExitCodeForError extracts the process exit code from an error returned by
// os/exec.Cmd.Run or os/exec.Cmd.Wait. It fails if the error doesn't carry an
// exit status.
func ExitCodeForError(err error) (int, error) {
	if err == nil {
		return 0, errors.New("nil error")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return 0, errors.New("error does not contain process exit status")
	}
	return exitErr.ExitCode(), nil
}

// IsPOSIXShellInvalidCommand returns whether or not an exit code represents an
// "invalid command" error from a POSIX shell.
func IsPOSIXShellInvalidCommand(code int) bool {
	return code == posixShellInvalidCommandExitCode
}

// IsPOSIXShellCommandNotFound returns whether or not an exit code represents a
// "command not found" error from a POSIX shell.
func IsPOSIXShellCommandNotFound(code int) bool {
	return code == posixShellCommandNotFoundExitCode
}

package process

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/logging"
)

// Command describes a subprocess invocation.
type Command struct {
	// Name is the command name or path. Names without a path separator are
	// searched for in PATH.
	Name string
	// Arguments are the command arguments, excluding the command name.
	Arguments []string
	// Directory is the working directory. If empty, the current working
	// directory is used.
	Directory string
	// Environment is the process environment in "KEY=value" form. If nil, the
	// current process environment is inherited.
	Environment []string
	// Input is the standard input source. If nil, the null device is used.
	Input io.Reader
	// Output is the standard output destination. If nil, output is relayed to
	// the logger at info level.
	Output io.Writer
	// Error is the standard error destination. If nil, error output is relayed
	// to the logger at warning level.
	Error io.Writer
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Arguments...), " ")
}

// Run runs the command to completion and returns its exit code. A command
// that starts but exits unsuccessfully isn't treated as an error: only
// failures to locate, start, or wait for the command are. If the context is
// cancelled, the process is killed.
func Run(ctx context.Context, command *Command, logger *logging.Logger) (int, error) {
	path, err := LookupCommand(command.Name)
	if err != nil {
		return ExitCodeFailure, err
	}

	process := exec.CommandContext(ctx, path, command.Arguments...)
	process.Dir = command.Directory
	process.Env = command.Environment
	process.Stdin = command.Input
	process.Stdout = command.Output
	if process.Stdout == nil {
		process.Stdout = logger.Writer(logging.LevelInfo)
	}
	process.Stderr = command.Error
	if process.Stderr == nil {
		process.Stderr = logger.Writer(logging.LevelWarn)
	}

	logger.Debugf("Running %s", command)
	if err := process.Run(); err != nil {
		if code, codeErr := ExitCodeForError(err); codeErr == nil {
			logger.Debugf("%s exited with code %d", command.Name, code)
			return code, nil
		}
		return ExitCodeFailure, errors.Wrapf(err, "unable to run %s", command.Name)
	}

	return ExitCodeSuccess, nil
}

package debian

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/logging"
	"github.com/mixpkg/mixpkg/pkg/process"
)

var (
	// dpkgCommand is the dpkg command name.
	dpkgCommand = "dpkg"

	// ErrDpkgNotFound indicates that dpkg couldn't be located.
	ErrDpkgNotFound = errors.New("unable to find dpkg command")
)

// BuildError indicates that dpkg ran but failed to build the package.
type BuildError struct {
	// ExitCode is the dpkg exit code.
	ExitCode int
}

// Error implements error.Error.
func (e *BuildError) Error() string {
	return fmt.Sprintf("dpkg exited with code %d", e.ExitCode)
}

// PackageFileName returns the package file name for a package.
func PackageFileName(name string) string {
	return name + ".deb"
}

// Build runs "dpkg -b" on the output tree to produce the package at
// destination.
func Build(ctx context.Context, output, destination string, logger *logging.Logger) error {
	if _, err := process.LookupCommand(dpkgCommand); err != nil {
		if errors.Is(err, process.ErrCommandNotFound) {
			return ErrDpkgNotFound
		}
		return errors.Wrap(err, "unable to locate dpkg")
	}

	command := &process.Command{
		Name:      dpkgCommand,
		Arguments: []string{"-b", output, destination},
	}
	code, err := process.Run(ctx, command, logger)
	if err != nil {
		return errors.Wrap(err, "unable to run dpkg")
	} else if code != process.ExitCodeSuccess {
		return &BuildError{ExitCode: code}
	}
	return nil
}

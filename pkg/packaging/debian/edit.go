package debian

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/logging"
	"github.com/mixpkg/mixpkg/pkg/process"
)

const (
	// EditorEnvironmentVariable is the environment variable naming the user's
	// editor.
	EditorEnvironmentVariable = "EDITOR"
	// DefaultEditor is the editor used when none is configured.
	DefaultEditor = "vim"
)

// Editor returns the editor command line, split into fields.
func Editor() []string {
	if fields := strings.Fields(os.Getenv(EditorEnvironmentVariable)); len(fields) > 0 {
		return fields
	}
	return []string{DefaultEditor}
}

// Edit opens the specified file in the user's editor, attached to the current
// terminal, and waits for the editor to exit.
func Edit(ctx context.Context, path string, logger *logging.Logger) error {
	editor := Editor()
	command := &process.Command{
		Name:      editor[0],
		Arguments: append(editor[1:], path),
		Input:     os.Stdin,
		Output:    os.Stdout,
		Error:     os.Stderr,
	}

	code, err := process.Run(ctx, command, logger)
	if err != nil {
		return errors.Wrap(err, "unable to run editor")
	} else if code != process.ExitCodeSuccess {
		return errors.Errorf("editor exited with code %d", code)
	}
	return nil
}

// ManualInstructions returns instructions for completing the package by hand.
func ManualInstructions(output, name string) string {
	return fmt.Sprintf(
		"You can edit %s manually and then run 'dpkg -b %s %s' to create the package.",
		ControlPath(output), output, PackageFileName(name),
	)
}

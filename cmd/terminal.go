package cmd

import (
	"os"

	"github.com/fatih/color"
	isatty "github.com/mattn/go-isatty"
)

// isTerminal returns whether or not a file descriptor refers to a terminal,
// including mintty-based terminals.
func isTerminal(descriptor uintptr) bool {
	return isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
}

// ConfigureColor disables colorized output if standard error isn't a terminal.
func ConfigureColor() {
	if !isTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}
}

// Interactive returns whether or not both standard input and standard output
// are terminals, i.e. whether or not an interactive program can be run.
func Interactive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

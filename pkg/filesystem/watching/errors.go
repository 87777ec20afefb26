package watching

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedEventStream indicates that a raw event buffer was
	// structurally invalid. The remainder of the buffer is discarded, but the
	// watch session remains usable.
	ErrMalformedEventStream = errors.New("malformed event stream")
	// ErrInvalidArgument indicates that an operation received an invalid
	// argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupported indicates that inotify isn't available on the current
	// platform.
	ErrUnsupported = errors.New("inotify watching not supported on this platform")
	// ErrClosed indicates that an operation was attempted on a closed registry.
	ErrClosed = errors.New("registry closed")
)

// ChannelInitError indicates that the inotify channel couldn't be created, for
// example due to descriptor table or inotify instance exhaustion.
type ChannelInitError struct {
	// Cause is the underlying error.
	Cause error
}

// Error implements error.Error.
func (e *ChannelInitError) Error() string {
	return fmt.Sprintf("unable to initialize inotify channel: %v", e.Cause)
}

// Unwrap returns the underlying error.
func (e *ChannelInitError) Unwrap() error {
	return e.Cause
}

// WatchInstallError indicates that a watch couldn't be established on a path
// or that traversal of a watched directory failed.
type WatchInstallError struct {
	// Path is the path being watched or traversed.
	Path string
	// Cause is the underlying error.
	Cause error
}

// Error implements error.Error.
func (e *WatchInstallError) Error() string {
	return fmt.Sprintf("unable to watch %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *WatchInstallError) Unwrap() error {
	return e.Cause
}

// WatchRemoveError indicates that the kernel rejected the removal of a watch.
type WatchRemoveError struct {
	// Handle is the watch handle being removed.
	Handle WatchHandle
	// Cause is the underlying error.
	Cause error
}

// Error implements error.Error.
func (e *WatchRemoveError) Error() string {
	return fmt.Sprintf("unable to remove watch %d: %v", e.Handle, e.Cause)
}

// Unwrap returns the underlying error.
func (e *WatchRemoveError) Unwrap() error {
	return e.Cause
}

// PollError indicates that checking for or reading pending events failed. It
// is distinct from a poll that simply times out.
type PollError struct {
	// Operation is the failed step ("wait", "pending", or "read").
	Operation string
	// Cause is the underlying error.
	Cause error
}

// Error implements error.Error.
func (e *PollError) Error() string {
	return fmt.Sprintf("event poll failed during %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PollError) Unwrap() error {
	return e.Cause
}

package watching

import (
	"time"
)

// OpenFlags control the creation of the inotify channel.
type OpenFlags uint

const (
	// OpenNonBlocking makes reads from the channel non-blocking.
	OpenNonBlocking OpenFlags = 1 << iota
	// OpenCloseOnExec closes the channel in child processes on exec.
	OpenCloseOnExec
)

// kernel is the notification channel used by a Registry. It's implemented by
// the inotify system call interface on Linux.
type kernel interface {
	// addWatch adds or modifies a watch on path.
	addWatch(path string, mask Mask) (WatchHandle, error)
	// removeWatch removes a watch.
	removeWatch(handle WatchHandle) error
	// wait blocks until the channel is readable or the timeout elapses. A
	// negative timeout blocks indefinitely. It returns whether or not the
	// channel is readable.
	wait(timeout time.Duration) (bool, error)
	// pending returns the number of bytes that can be read without blocking.
	pending() (int, error)
	// read performs a single read from the channel.
	read(buffer []byte) (int, error)
	// close releases the channel.
	close() error
}

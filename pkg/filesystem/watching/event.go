package watching

import (
	"fmt"

	"github.com/mixpkg/mixpkg/pkg/filesystem"
)

// WatchHandle is an inotify watch descriptor. It's unique while its watch is
// active, but the kernel may reuse it after the watch is removed.
type WatchHandle int32

// Event is a decoded inotify event.
type Event struct {
	// Handle is the watch that generated the event. For a continuation record
	// it's inherited from the event being continued.
	Handle WatchHandle
	// Mask is the event mask.
	Mask Mask
	// Cookie correlates the two halves of a rename.
	Cookie uint32
	// File is the name of the affected entry within Directory. It's empty if
	// the event concerns the watched object itself.
	File string
	// Directory is the path registered for Handle at decode time. It's empty
	// if the handle wasn't registered as a directory (or has been removed).
	Directory string
}

// Path returns the full path of the event subject.
func (e Event) Path() string {
	return filesystem.Join(e.Directory, e.File)
}

// String provides a human-readable representation of the event.
func (e Event) String() string {
	return fmt.Sprintf("%s %s (watch %d, cookie %d)", e.Mask, e.Path(), e.Handle, e.Cookie)
}

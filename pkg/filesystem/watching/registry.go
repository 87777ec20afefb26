package watching

import (
	"os"

	"github.com/mixpkg/mixpkg/pkg/logging"
)

// Registry owns an inotify channel and the mapping from watch handles to the
// directories they watch.
type Registry struct {
	// kernel is the underlying notification channel.
	kernel kernel
	// paths maps directory watch handles to their paths.
	paths map[WatchHandle]string
	// readDir lists a directory during recursive watch installation.
	readDir func(string) ([]os.DirEntry, error)
	// logger is the registry logger.
	logger *logging.Logger
	// closed indicates whether or not the channel has been released.
	closed bool
}

// Open creates a new inotify channel and an empty registry around it. Channel
// creation failures are reported as *ChannelInitError.
func Open(flags OpenFlags, logger *logging.Logger) (*Registry, error) {
	k, err := newKernel(flags)
	if err != nil {
		return nil, &ChannelInitError{Cause: err}
	}
	return newRegistry(k, logger), nil
}

// newRegistry creates a registry around an existing kernel channel.
func newRegistry(k kernel, logger *logging.Logger) *Registry {
	return &Registry{
		kernel: k,
		paths:   make(map[WatchHandle]string),
		readDir: os.ReadDir,
		logger:  logger,
	}
}

// AddWatch requests monitoring of path for the events in mask. It doesn't
// record the path in the registry; callers that watch directories decide
// whether to do so. Failures are reported as *WatchInstallError.
func (r *Registry) AddWatch(path string, mask Mask) (WatchHandle, error) {
	if r.closed {
		return 0, &WatchInstallError{Path: path, Cause: ErrClosed}
	}
	handle, err := r.kernel.addWatch(path, mask)
	if err != nil {
		return 0, &WatchInstallError{Path: path, Cause: err}
	}
	r.logger.Tracef("Watch %d installed on %s", handle, path)
	return handle, nil
}

// record associates a directory path with a watch handle.
func (r *Registry) record(handle WatchHandle, path string) {
	r.paths[handle] = path
}

// RemoveWatch releases a watch. The handle's path mapping is only erased once
// the kernel has accepted the removal. Failures are reported as
// *WatchRemoveError.
func (r *Registry) RemoveWatch(handle WatchHandle) error {
	if r.closed {
		return &WatchRemoveError{Handle: handle, Cause: ErrClosed}
	}
	if err := r.kernel.removeWatch(handle); err != nil {
		return &WatchRemoveError{Handle: handle, Cause: err}
	}
	delete(r.paths, handle)
	return nil
}

// Resolve returns the directory path recorded for handle. The absence of a
// mapping is a legitimate state: the handle may refer to a non-directory or to
// a watch that has already been removed.
func (r *Registry) Resolve(handle WatchHandle) (string, bool) {
	path, ok := r.paths[handle]
	return path, ok
}

// Watches returns the number of directory watches recorded in the registry.
func (r *Registry) Watches() int {
	return len(r.paths)
}

// Close releases the inotify channel and, with it, every watch. It's safe to
// call more than once.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.paths = make(map[WatchHandle]string)
	return r.kernel.close()
}

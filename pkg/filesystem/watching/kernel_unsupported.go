//go:build !linux

package watching

// Supported indicates whether or not inotify watching is supported on the
// current platform.
const Supported = false

// newKernel reports that inotify is unavailable.
func newKernel(_ OpenFlags) (kernel, error) {
	return nil, ErrUnsupported
}

//go:build linux

package watching

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Supported indicates whether or not inotify watching is supported on the
// current platform.
const Supported = true

// inotifyKernel implements kernel using the inotify system calls.
type inotifyKernel struct {
	// descriptor is the inotify instance file descriptor.
	descriptor int
}

// newKernel creates a new inotify instance.
func newKernel(flags OpenFlags) (kernel, error) {
	var initFlags int
	if flags&OpenNonBlocking != 0 {
		initFlags |= unix.IN_NONBLOCK
	}
	if flags&OpenCloseOnExec != 0 {
		initFlags |= unix.IN_CLOEXEC
	}

	descriptor, err := unix.InotifyInit1(initFlags)
	if err != nil {
		return nil, err
	}

	return &inotifyKernel{descriptor: descriptor}, nil
}

// addWatch implements kernel.addWatch.
func (k *inotifyKernel) addWatch(path string, mask Mask) (WatchHandle, error) {
	handle, err := unix.InotifyAddWatch(k.descriptor, path, uint32(mask))
	if err != nil {
		return 0, err
	}
	return WatchHandle(handle), nil
}

// removeWatch implements kernel.removeWatch.
func (k *inotifyKernel) removeWatch(handle WatchHandle) error {
	_, err := unix.InotifyRmWatch(k.descriptor, uint32(handle))
	return err
}

// wait implements kernel.wait.
func (k *inotifyKernel) wait(timeout time.Duration) (bool, error) {
	// Convert the timeout to milliseconds, rounding non-zero sub-millisecond
	// timeouts up so that they don't turn into a non-blocking check.
	milliseconds := -1
	if timeout >= 0 {
		milliseconds = int(timeout / time.Millisecond)
		if milliseconds == 0 && timeout > 0 {
			milliseconds = 1
		}
	}

	descriptors := []unix.PollFd{{Fd: int32(k.descriptor), Events: unix.POLLIN}}
	ready, err := unix.Poll(descriptors, milliseconds)
	if err == unix.EINTR {
		return false, nil
	} else if err != nil {
		return false, err
	} else if ready == 0 {
		return false, nil
	}

	if descriptors[0].Revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
		return false, errors.Errorf("descriptor in error state (revents 0x%x)", descriptors[0].Revents)
	}
	return descriptors[0].Revents&unix.POLLIN != 0, nil
}

// pending implements kernel.pending. On Linux, FIONREAD is spelled TIOCINQ.
func (k *inotifyKernel) pending() (int, error) {
	return unix.IoctlGetInt(k.descriptor, unix.TIOCINQ)
}

// read implements kernel.read.
func (k *inotifyKernel) read(buffer []byte) (int, error) {
	for {
		n, err := unix.Read(k.descriptor, buffer)
		if err == unix.EINTR {
			continue
		} else if err == unix.EAGAIN {
			return 0, nil
		}
		return n, err
	}
}

// close implements kernel.close.
func (k *inotifyKernel) close() error {
	return unix.Close(k.descriptor)
}

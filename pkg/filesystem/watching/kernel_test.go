package watching

import (
	"time"
)

// fakeKernel is an in-memory kernel implementation.
type fakeKernel struct {
	// nextHandle is the last handle issued.
	nextHandle WatchHandle
	// watches maps active handles to their paths.
	watches map[WatchHandle]string
	// masks maps watched paths to their masks.
	masks map[string]Mask
	// addFailures maps paths to watch installation errors.
	addFailures map[string]error
	// removeFailure is returned by removeWatch if non-nil.
	removeFailure error
	// waitFailure is returned by wait if non-nil.
	waitFailure error
	// pendingFailure is returned by pending if non-nil.
	pendingFailure error
	// readFailure is returned by read if non-nil.
	readFailure error
	// data is the unread event data.
	data []byte
	// closed indicates whether or not close has been called.
	closed bool
}

func newFakeKernel() *fakeKernel {
	return &fakeKernel{
		watches:     make(map[WatchHandle]string),
		masks:       make(map[string]Mask),
		addFailures: make(map[string]error),
	}
}

func (k *fakeKernel) addWatch(path string, mask Mask) (WatchHandle, error) {
	if err := k.addFailures[path]; err != nil {
		return 0, err
	}
	k.nextHandle++
	k.watches[k.nextHandle] = path
	k.masks[path] = mask
	return k.nextHandle, nil
}

func (k *fakeKernel) removeWatch(handle WatchHandle) error {
	if k.removeFailure != nil {
		return k.removeFailure
	}
	delete(k.watches, handle)
	return nil
}

func (k *fakeKernel) wait(_ time.Duration) (bool, error) {
	if k.waitFailure != nil {
		return false, k.waitFailure
	}
	return len(k.data) > 0, nil
}

func (k *fakeKernel) pending() (int, error) {
	if k.pendingFailure != nil {
		return 0, k.pendingFailure
	}
	return len(k.data), nil
}

func (k *fakeKernel) read(buffer []byte) (int, error) {
	if k.readFailure != nil {
		return 0, k.readFailure
	}
	n := copy(buffer, k.data)
	k.data = k.data[n:]
	return n, nil
}

func (k *fakeKernel) close() error {
	k.closed = true
	return nil
}

package watching

import (
	"testing"

	"github.com/pkg/errors"
)

// TestRegistryAddWatchFailure tests that watch installation failures are
// reported with their path.
func TestRegistryAddWatchFailure(t *testing.T) {
	k := newFakeKernel()
	cause := errors.New("no space left on device")
	k.addFailures["/missing"] = cause
	registry := newRegistry(k, nil)

	_, err := registry.AddWatch("/missing", MaskCreate)
	var installErr *WatchInstallError
	if !errors.As(err, &installErr) {
		t.Fatal("watch installation failure has unexpected type:", err)
	} else if installErr.Path != "/missing" {
		t.Error("watch installation failure has incorrect path:", installErr.Path)
	} else if !errors.Is(err, cause) {
		t.Error("watch installation failure does not wrap cause")
	}
}

// TestRegistryRemoveWatch tests that removal erases mappings only on success.
func TestRegistryRemoveWatch(t *testing.T) {
	k := newFakeKernel()
	registry := newRegistry(k, nil)

	handle, err := registry.AddWatch("/etc", MaskCreate)
	if err != nil {
		t.Fatal("unable to add watch:", err)
	}
	registry.record(handle, "/etc")

	k.removeFailure = errors.New("invalid argument")
	var removeErr *WatchRemoveError
	if err := registry.RemoveWatch(handle); !errors.As(err, &removeErr) {
		t.Fatal("watch removal failure has unexpected type:", err)
	} else if removeErr.Handle != handle {
		t.Error("watch removal failure has incorrect handle:", removeErr.Handle)
	}
	if path, ok := registry.Resolve(handle); !ok || path != "/etc" {
		t.Error("mapping erased by failed removal")
	}

	k.removeFailure = nil
	if err := registry.RemoveWatch(handle); err != nil {
		t.Fatal("unable to remove watch:", err)
	}
	if _, ok := registry.Resolve(handle); ok {
		t.Error("mapping retained after removal")
	}
	if registry.Watches() != 0 {
		t.Error("watch count non-zero after removal:", registry.Watches())
	}
}

// TestRegistryClose tests that closing releases the channel and rejects
// further operations.
func TestRegistryClose(t *testing.T) {
	k := newFakeKernel()
	registry := newRegistry(k, nil)
	handle, _ := registry.AddWatch("/var", MaskCreate)
	registry.record(handle, "/var")

	if err := registry.Close(); err != nil {
		t.Fatal("unable to close registry:", err)
	} else if !k.closed {
		t.Error("kernel channel not closed")
	}
	if err := registry.Close(); err != nil {
		t.Error("repeated close failed:", err)
	}
	if registry.Watches() != 0 {
		t.Error("watches remain after close")
	}
	if _, err := registry.AddWatch("/var", MaskCreate); !errors.Is(err, ErrClosed) {
		t.Error("watch installation on closed registry not rejected:", err)
	}
	if err := registry.RemoveWatch(handle); !errors.Is(err, ErrClosed) {
		t.Error("watch removal on closed registry not rejected:", err)
	}
	if _, err := registry.Poll(0); !errors.Is(err, ErrClosed) {
		t.Error("poll on closed registry not rejected:", err)
	}
}

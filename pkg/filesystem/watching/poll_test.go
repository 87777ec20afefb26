package watching

import (
	"testing"

	"github.com/pkg/errors"
)

// TestPollTimeout tests that a poll with nothing pending returns no events and
// no error.
func TestPollTimeout(t *testing.T) {
	registry := newRegistry(newFakeKernel(), nil)
	events, err := registry.Poll(0)
	if err != nil {
		t.Fatal("poll failed:", err)
	} else if len(events) != 0 {
		t.Error("events returned on timeout:", events)
	}
}

// TestPollEvents tests that pending events are read and resolved against the
// registry.
func TestPollEvents(t *testing.T) {
	k := newFakeKernel()
	registry := newRegistry(k, nil)
	handle, _ := registry.AddWatch("/usr/share", MaskCreate)
	registry.record(handle, "/usr/share")

	k.data = concatenate(
		encodeRecord(int32(handle), MaskCreate, 0, "doc", 16),
		encodeRecord(int32(handle), MaskCreate|MaskIsDir, 0, "man", 0),
	)
	events, err := registry.Poll(DefaultPollTimeout)
	if err != nil {
		t.Fatal("poll failed:", err)
	} else if len(events) != 2 {
		t.Fatal("unexpected event count:", len(events))
	}
	if events[0].Path() != "/usr/share/doc" || events[1].Path() != "/usr/share/man" {
		t.Error("event paths incorrect:", events)
	}
	if len(k.data) != 0 {
		t.Error("pending data not fully consumed")
	}
}

// TestPollTruncated tests that a partial trailing record is discarded.
func TestPollTruncated(t *testing.T) {
	k := newFakeKernel()
	registry := newRegistry(k, nil)
	partial := encodeRecord(1, MaskCreate, 0, "partial", 0)
	k.data = concatenate(encodeRecord(1, MaskCreate, 0, "whole", 0), partial[:10])

	events, err := registry.Poll(0)
	if err != nil {
		t.Fatal("poll failed:", err)
	} else if len(events) != 1 || events[0].File != "whole" {
		t.Error("unexpected events:", events)
	}
}

// TestPollMalformed tests that a malformed buffer is reported and that polling
// remains usable afterward.
func TestPollMalformed(t *testing.T) {
	k := newFakeKernel()
	registry := newRegistry(k, nil)

	k.data = encodeRecord(0, MaskModify, 0, "", 0)
	if _, err := registry.Poll(0); !errors.Is(err, ErrMalformedEventStream) {
		t.Fatal("malformed buffer not reported:", err)
	}

	k.data = encodeRecord(1, MaskCreate, 0, "x", 0)
	if events, err := registry.Poll(0); err != nil {
		t.Fatal("poll failed after malformed buffer:", err)
	} else if len(events) != 1 {
		t.Error("unexpected event count:", len(events))
	}
}

// TestPollFailures tests that channel failures are reported as poll errors.
func TestPollFailures(t *testing.T) {
	cause := errors.New("bad file descriptor")
	testCases := []struct {
		operation string
		configure func(*fakeKernel)
	}{
		{"wait", func(k *fakeKernel) { k.waitFailure = cause }},
		{"pending", func(k *fakeKernel) { k.pendingFailure = cause }},
		{"read", func(k *fakeKernel) { k.readFailure = cause }},
	}

	for _, testCase := range testCases {
		k := newFakeKernel()
		k.data = encodeRecord(1, MaskCreate, 0, "x", 0)
		testCase.configure(k)
		registry := newRegistry(k, nil)

		var pollErr *PollError
		if _, err := registry.Poll(0); !errors.As(err, &pollErr) {
			t.Errorf("%s: failure has unexpected type: %v", testCase.operation, err)
		} else if pollErr.Operation != testCase.operation {
			t.Errorf("%s: failure has incorrect operation: %s", testCase.operation, pollErr.Operation)
		} else if !errors.Is(err, cause) {
			t.Errorf("%s: failure does not wrap cause", testCase.operation)
		}
	}
}

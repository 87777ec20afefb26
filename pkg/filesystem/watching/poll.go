package watching

import (
	"time"
)

// Poll waits up to timeout for events to become available and returns them
// decoded. A negative timeout waits indefinitely and a zero timeout only
// collects events that are already pending. A timeout with nothing pending
// returns no events and no error.
//
// The exact number of pending bytes is queried before reading, so that a single
// read consumes whole records. Failures to wait for, size, or read events are
// reported as *PollError. A structurally invalid buffer is reported as
// ErrMalformedEventStream, after which polling may continue.
func (r *Registry) Poll(timeout time.Duration) ([]Event, error) {
	if r.closed {
		return nil, &PollError{Operation: "wait", Cause: ErrClosed}
	}

	ready, err := r.kernel.wait(timeout)
	if err != nil {
		return nil, &PollError{Operation: "wait", Cause: err}
	} else if !ready {
		return nil, nil
	}

	size, err := r.kernel.pending()
	if err != nil {
		return nil, &PollError{Operation: "pending", Cause: err}
	} else if size <= 0 {
		return nil, nil
	}

	buffer := make([]byte, size)
	n, err := r.kernel.read(buffer)
	if err != nil {
		return nil, &PollError{Operation: "read", Cause: err}
	}
	buffer = buffer[:n]

	events, consumed, err := Decode(buffer, r)
	if err != nil {
		return nil, err
	}
	if consumed < len(buffer) {
		r.logger.Warnf("Discarded %d bytes of truncated event data", len(buffer)-consumed)
	}
	r.logger.Tracef("Decoded %d events from %d bytes", len(events), consumed)

	return events, nil
}

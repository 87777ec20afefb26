package tracking

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/contextutil"
	"github.com/mixpkg/mixpkg/pkg/filesystem/watching"
	"github.com/mixpkg/mixpkg/pkg/logging"
)

const (
	// DefaultInterval is the default poll timeout, which bounds how long
	// cancellation takes to be observed.
	DefaultInterval = watching.DefaultPollTimeout
)

// Source is a source of decoded filesystem events.
type Source interface {
	// Poll waits up to timeout for events and returns them.
	Poll(timeout time.Duration) ([]watching.Event, error)
}

// Tracker polls an event source and folds the resulting events into a set.
type Tracker struct {
	// source is the event source.
	source Source
	// set is the installed set.
	set *Set
	// interval is the poll timeout.
	interval time.Duration
	// logger is the tracker logger.
	logger *logging.Logger
}

// NewTracker creates a new tracker that folds events from source into set. A
// non-positive interval selects DefaultInterval.
func NewTracker(source Source, set *Set, interval time.Duration, logger *logging.Logger) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{
		source:   source,
		set:      set,
		interval: interval,
		logger:   logger,
	}
}

// Run polls until the context is cancelled, which is observed once per poll
// interval. Malformed event buffers are logged and polling continues. Any other
// polling failure terminates the loop and is returned, leaving the events
// folded so far in the set. Cancellation isn't treated as an error. Once
// cancelled, a single non-blocking poll folds the events already queued, so
// Run returns even if the watched tree keeps changing.
func (t *Tracker) Run(ctx context.Context) error {
	for !contextutil.IsCancelled(ctx) {
		if _, err := t.poll(t.interval); err != nil {
			return err
		}
	}

	_, err := t.poll(0)
	return err
}

// poll performs a single poll and folds the resulting events. It returns the
// number of events received (malformed buffers count as one) and any terminal
// error.
func (t *Tracker) poll(timeout time.Duration) (int, error) {
	events, err := t.source.Poll(timeout)
	if err != nil {
		if errors.Is(err, watching.ErrMalformedEventStream) {
			t.logger.Warn(err)
			return 1, nil
		}
		return 0, errors.Wrap(err, "event polling failed")
	}

	for _, event := range events {
		t.logger.Tracef("Event: %s", event)
		if t.set.Apply(event) {
			t.logger.Tracef("Installed set now contains %d records", t.set.Len())
		}
	}
	return len(events), nil
}

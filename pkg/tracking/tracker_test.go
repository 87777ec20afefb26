package tracking

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/filesystem/watching"
	"github.com/mixpkg/mixpkg/pkg/logging"
)

// pollResult is a scripted poll result.
type pollResult struct {
	events []watching.Event
	err    error
}

// scriptedSource is a Source that returns scripted results and then cancels a
// context once they're exhausted.
type scriptedSource struct {
	results []pollResult
	cancel  context.CancelFunc
	polls   int
}

func (s *scriptedSource) Poll(_ time.Duration) ([]watching.Event, error) {
	s.polls++
	if len(s.results) == 0 {
		s.cancel()
		return nil, nil
	}
	result := s.results[0]
	s.results = s.results[1:]
	return result.events, result.err
}

// TestTrackerFolds tests that the tracker folds events until cancelled and
// continues past malformed buffers.
func TestTrackerFolds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	source := &scriptedSource{
		results: []pollResult{
			{events: []watching.Event{event(watching.MaskCreate, "/r", "x")}},
			{},
			{err: errors.Wrap(watching.ErrMalformedEventStream, "leading continuation")},
			{events: []watching.Event{
				event(watching.MaskCreate, "/r", "y"),
				event(watching.MaskMovedFrom, "/r", "x"),
			}},
		},
		cancel: cancel,
	}
	set := &Set{}

	if err := NewTracker(source, set, time.Millisecond, nil).Run(ctx); err != nil {
		t.Fatal("tracker failed:", err)
	}
	if set.Len() != 1 || set.Records()[0].File != "y" {
		t.Error("unexpected set contents:", set.Records())
	}
	if source.polls != 6 {
		t.Error("unexpected poll count:", source.polls)
	}
}

// TestTrackerPollFailure tests that a poll failure terminates the tracker with
// a partial result, leaving reporting of the failure to the caller.
func TestTrackerPollFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cause := &watching.PollError{Operation: "read", Cause: errors.New("bad file descriptor")}
	source := &scriptedSource{
		results: []pollResult{
			{events: []watching.Event{event(watching.MaskCreate, "/r", "x")}},
			{err: cause},
			{events: []watching.Event{event(watching.MaskCreate, "/r", "y")}},
		},
		cancel: cancel,
	}
	set := &Set{}
	output := &bytes.Buffer{}
	logger := logging.NewLogger(logging.LevelError, output)

	err := NewTracker(source, set, 0, logger).Run(ctx)
	var pollErr *watching.PollError
	if !errors.As(err, &pollErr) {
		t.Fatal("poll failure not returned:", err)
	}
	if set.Len() != 1 {
		t.Error("partial result not retained:", set.Records())
	}
	if output.Len() != 0 {
		t.Error("tracker logged a returned error:", output.String())
	}
}

// TestTrackerCancelled tests that a cancelled tracker performs a single
// non-blocking poll for queued events.
func TestTrackerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source := &scriptedSource{
		results: []pollResult{
			{events: []watching.Event{event(watching.MaskCreate, "/r", "x")}},
		},
		cancel: cancel,
	}
	set := &Set{}
	if err := NewTracker(source, set, 0, nil).Run(ctx); err != nil {
		t.Fatal("cancelled tracker failed:", err)
	}
	if source.polls != 1 {
		t.Error("unexpected poll count:", source.polls)
	}
	if set.Len() != 1 {
		t.Error("queued events not drained")
	}
}

// endlessSource is a Source that always returns a creation event, as a tree
// that's still being written to would.
type endlessSource struct {
	polls int
}

func (s *endlessSource) Poll(_ time.Duration) ([]watching.Event, error) {
	s.polls++
	return []watching.Event{event(watching.MaskCreate, "/r", "log")}, nil
}

// TestTrackerStopsWithActiveSource tests that cancellation terminates the
// tracker even if events keep arriving.
func TestTrackerStopsWithActiveSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source := &endlessSource{}

	done := make(chan error, 1)
	go func() {
		done <- NewTracker(source, &Set{}, time.Millisecond, nil).Run(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal("tracker failed:", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tracker did not stop after cancellation")
	}
	if source.polls != 1 {
		t.Error("unexpected poll count:", source.polls)
	}
}

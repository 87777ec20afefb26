// Package install runs a build while tracking the files it installs.
package install

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/filesystem/watching"
	"github.com/mixpkg/mixpkg/pkg/logging"
	"github.com/mixpkg/mixpkg/pkg/must"
	"github.com/mixpkg/mixpkg/pkg/process"
	"github.com/mixpkg/mixpkg/pkg/tracking"
)

const (
	// DefaultMask is the event mask used to track installations.
	DefaultMask = watching.MaskCreate | watching.MaskMovedFrom | watching.MaskMovedTo
)

// Options configure a monitored installation.
type Options struct {
	// Root is the directory tree to watch.
	Root string
	// MaximumDepth is the watch recursion depth. A negative value is
	// unbounded.
	MaximumDepth int
	// PollInterval is the tracker poll interval. A non-positive value selects
	// the tracker default.
	PollInterval time.Duration
	// Command is the build command.
	Command *process.Command
}

// Result is the outcome of a monitored installation.
type Result struct {
	// Records are the entries created under the root during the build, in
	// creation order.
	Records []tracking.Record
	// ExitCode is the build exit code.
	ExitCode int
	// TrackingError is the error that terminated event tracking early, if any.
	// Records are partial when it's non-nil.
	TrackingError error
}

// Monitor watches the root tree, runs the build command in the foreground
// while tracking events in the background, and returns the records collected
// once the tracker has been stopped and joined. Cancelling the context kills
// the build.
func Monitor(ctx context.Context, options *Options, logger *logging.Logger) (*Result, error) {
	registry, err := watching.Open(watching.OpenNonBlocking|watching.OpenCloseOnExec, logger.Sublogger("watch"))
	if err != nil {
		return nil, err
	}
	defer must.Close(registry, logger)

	if err := registry.WatchRecursively(options.Root, DefaultMask, options.MaximumDepth); err != nil {
		return nil, errors.Wrap(err, "unable to watch root")
	}
	logger.Infof("Watching %d directories under %s", registry.Watches(), options.Root)

	return monitor(ctx, registry, options, logger)
}

// monitor implements the concurrent portion of Monitor on top of an arbitrary
// event source.
func monitor(ctx context.Context, source tracking.Source, options *Options, logger *logging.Logger) (*Result, error) {
	set := &tracking.Set{}
	tracker := tracking.NewTracker(source, set, options.PollInterval, logger.Sublogger("track"))

	// Start tracking in the background.
	trackingCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var trackingErr error
	var group sync.WaitGroup
	group.Add(1)
	go func() {
		trackingErr = tracker.Run(trackingCtx)
		group.Done()
	}()

	// Run the build in the foreground, then stop the tracker and wait for it
	// to exit before touching the set.
	logger.Infof("Running %s", options.Command)
	exitCode, runErr := process.Run(ctx, options.Command, logger.Sublogger("build"))
	cancel()
	group.Wait()

	if runErr != nil {
		return nil, runErr
	}

	result := &Result{
		Records:       set.Records(),
		ExitCode:      exitCode,
		TrackingError: trackingErr,
	}
	if logger.Enabled(logging.LevelDebug) {
		for _, r := range result.Records {
			logger.Debugf("Installed %s (%s)", r.Path(), r.Mask)
		}
	}

	return result, nil
}

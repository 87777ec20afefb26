package main

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/cmd"

	"github.com/mixpkg/mixpkg/pkg/contextutil"
	"github.com/mixpkg/mixpkg/pkg/install"
	"github.com/mixpkg/mixpkg/pkg/logging"
	"github.com/mixpkg/mixpkg/pkg/packaging/debian"
	"github.com/mixpkg/mixpkg/pkg/process"
)

// run performs a packaging session: a monitored build, staging, control file
// generation and editing, and the package build.
func run(ctx context.Context, s *settings, logger *logging.Logger) error {
	c := s.configuration

	// Run the build while tracking what it installs.
	build := &process.Command{
		Name:        c.Build.Command,
		Arguments:   s.arguments,
		Environment: s.environment,
		Input:       os.Stdin,
		Output:      os.Stdout,
		Error:       os.Stderr,
	}
	result, err := install.Monitor(ctx, &install.Options{
		Root:         s.sysroot,
		MaximumDepth: c.Watch.MaximumDepth,
		PollInterval: c.Watch.PollInterval,
		Command:      build,
	}, logger.Sublogger("install"))
	if err != nil {
		return errors.Wrap(err, "monitored build failed")
	} else if contextutil.IsCancelled(ctx) {
		return errors.New("interrupted")
	}
	if result.TrackingError != nil {
		cmd.Warning("event tracking stopped early, so the package may be incomplete: " + result.TrackingError.Error())
	}
	if result.ExitCode != process.ExitCodeSuccess {
		return &cmd.ExitError{
			Code:  result.ExitCode,
			Cause: errors.Errorf("%s exited with code %d", build, result.ExitCode),
		}
	}
	if len(result.Records) == 0 {
		return errors.Errorf("nothing was installed under %s", s.sysroot)
	}
	logger.Infof("Build installed %d items", len(result.Records))

	// Stage installed items. Unless requested otherwise, they're removed once
	// we're done, but they're kept if packaging needs to be finished by hand.
	stager, err := debian.NewStager(&debian.StagerOptions{
		Sysroot:         s.sysroot,
		Output:          s.output,
		Exclude:         c.Stage.Exclude,
		MaximumFileSize: uint64(c.Stage.MaximumFileSize),
	}, logger.Sublogger("stage"))
	if err != nil {
		return err
	}
	keep := s.reserve
	defer func() {
		if keep {
			return
		}
		logger.Info("Cleaning staged items")
		if err := stager.Cleanup(); err != nil {
			cmd.Warning("unable to clean up staged items: " + err.Error())
		}
	}()

	summary, err := stager.Stage(result.Records)
	if err != nil {
		return errors.Wrap(err, "staging failed")
	}
	logger.Infof("Staged %s", summary)

	// Write and edit the control file.
	controlPath, err := debian.WriteControl(s.output, &c.Package, logger)
	if err != nil {
		return err
	}
	if s.edit {
		if !cmd.Interactive() {
			cmd.Warning("not running in a terminal, so the control file won't be edited")
		} else if err := debian.Edit(ctx, controlPath, logger); err != nil {
			keep = true
			cmd.Warning(debian.ManualInstructions(s.output, c.Package.Name))
			return errors.Wrap(err, "unable to edit control file")
		}
	}

	// Build the package.
	packagePath := debian.PackageFileName(c.Package.Name)
	if err := debian.Build(ctx, s.output, packagePath, logger.Sublogger("dpkg")); err != nil {
		keep = true
		if errors.Is(err, debian.ErrDpkgNotFound) {
			return err
		}
		return errors.Wrapf(err, "unable to create package for %s, fix %s and run 'dpkg -b %s %s' again",
			c.Package.Name, controlPath, s.output, packagePath,
		)
	}
	logger.Infof("Created %s", packagePath)

	return nil
}

package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/configuration"
	"github.com/mixpkg/mixpkg/pkg/environment"
)

// settings are the resolved parameters for a packaging session.
type settings struct {
	// sysroot is the absolute sysroot path.
	sysroot string
	// output is the absolute output directory path.
	output string
	// reserve indicates whether or not staged items are kept.
	reserve bool
	// edit indicates whether or not the control file is opened in an editor.
	edit bool
	// configuration is the merged configuration.
	configuration *configuration.Configuration
	// arguments are the build arguments.
	arguments []string
	// environment is the build environment.
	environment []string
}

// directory resolves a path to an absolute directory path. If noFollow is
// true, then the path itself must be a directory rather than a symbolic link
// to one.
func directory(path string, noFollow bool) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "unable to compute absolute path")
	}

	stat := os.Stat
	if noFollow {
		stat = os.Lstat
	}
	if metadata, err := stat(absolute); err != nil {
		return "", err
	} else if !metadata.IsDir() {
		return "", errors.New("not a directory")
	}

	return absolute, nil
}

// newSettings merges command line flags with the configuration file and
// validates the result. The changed callback reports whether or not a flag was
// explicitly set.
func newSettings(flags *rootFlags, changed func(string) bool, arguments []string) (*settings, error) {
	// Load the configuration. An explicitly specified file must exist.
	path, required := flags.config, true
	if path == "" {
		path, required = configuration.DefaultPath, false
	}
	c, err := configuration.Load(path, required)
	if err != nil {
		return nil, err
	}

	// Apply command line overrides.
	if flags.packageName != "" {
		c.Package.Name = flags.packageName
	}
	if changed("max-depth") {
		c.Watch.MaximumDepth = flags.maximumDepth
	}
	if flags.environmentFile != "" {
		c.Build.EnvironmentFile = flags.environmentFile
	}
	if err := c.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	// Validate directories.
	if flags.sysroot == "" {
		return nil, errors.New("sysroot not specified")
	}
	sysroot, err := directory(flags.sysroot, true)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid sysroot directory: %s", flags.sysroot)
	}
	output, err := directory(flags.output, false)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid output directory: %s", flags.output)
	}

	// Determine build arguments.
	if len(arguments) == 0 {
		arguments = c.Build.Arguments
	}

	// Compute the build environment.
	buildEnvironment, err := environment.Build([]string{c.Build.EnvironmentFile}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compute build environment")
	}

	return &settings{
		sysroot:       sysroot,
		output:        output,
		reserve:       flags.reserve,
		edit:          !flags.noEdit,
		configuration: c,
		arguments:     arguments,
		environment:   buildEnvironment,
	}, nil
}

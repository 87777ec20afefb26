package configuration

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/encoding"
	"github.com/mixpkg/mixpkg/pkg/packaging/exclude"
)

const (
	// DefaultPath is the configuration file loaded from the working directory
	// when no path is specified.
	DefaultPath = "mixpkg.yml"
	// DefaultBuildCommand is the default build command.
	DefaultBuildCommand = "make"
	// DefaultMaximumDepth is the default watch recursion depth.
	DefaultMaximumDepth = 9
)

// Package is the Debian package metadata.
type Package struct {
	// Name is the package name.
	Name string `yaml:"name"`
	// Version is the package version.
	Version string `yaml:"version"`
	// Section is the archive section.
	Section string `yaml:"section"`
	// Priority is the package priority.
	Priority string `yaml:"priority"`
	// Architecture is the package architecture.
	Architecture string `yaml:"architecture"`
	// Maintainer is the package maintainer.
	Maintainer string `yaml:"maintainer"`
	// Depends are the package dependencies.
	Depends []string `yaml:"depends"`
	// Description is the package description.
	Description string `yaml:"description"`
}

// Build is the build invocation.
type Build struct {
	// Command is the build program.
	Command string `yaml:"command"`
	// Arguments are the build arguments used when none are provided on the
	// command line.
	Arguments []string `yaml:"arguments"`
	// EnvironmentFile is a dotenv file applied to the build environment.
	EnvironmentFile string `yaml:"environmentFile"`
}

// Watch are the watch parameters.
type Watch struct {
	// MaximumDepth is the recursion depth below the sysroot. A negative value
	// is unbounded.
	MaximumDepth int `yaml:"maxDepth"`
	// PollInterval is the event poll interval.
	PollInterval time.Duration `yaml:"pollInterval"`
}

// Stage are the staging rules.
type Stage struct {
	// Exclude are doublestar patterns, relative to the sysroot, for installed
	// paths that shouldn't be packaged.
	Exclude []string `yaml:"exclude"`
	// MaximumFileSize is the size above which installed files are skipped. A
	// zero value is unlimited.
	MaximumFileSize ByteSize `yaml:"maxFileSize"`
}

// Configuration is the top-level configuration object.
type Configuration struct {
	// Package is the package metadata.
	Package Package `yaml:"package"`
	// Build is the build invocation.
	Build Build `yaml:"build"`
	// Watch are the watch parameters.
	Watch Watch `yaml:"watch"`
	// Stage are the staging rules.
	Stage Stage `yaml:"stage"`
}

// Default returns the default configuration.
func Default() *Configuration {
	return &Configuration{
		Build: Build{
			Command:   DefaultBuildCommand,
			Arguments: []string{"install"},
		},
		Watch: Watch{
			MaximumDepth: DefaultMaximumDepth,
		},
	}
}

// Load loads a configuration file on top of the default configuration. If
// required is false and the file doesn't exist, the default configuration is
// returned. The returned structure is not re-used, so its members can be
// freely mutated.
func Load(path string, required bool) (*Configuration, error) {
	result := Default()
	if err := encoding.LoadAndUnmarshalYAML(path, result); err != nil {
		if os.IsNotExist(err) && !required {
			return result, nil
		}
		return nil, errors.Wrapf(err, "unable to load configuration from %s", path)
	}
	return result, nil
}

// Save writes the configuration to the specified path.
func (c *Configuration) Save(path string) error {
	return encoding.MarshalAndSaveYAML(path, 0644, c)
}

// validPackageName returns whether or not a Debian package name is valid: at
// least two characters from [a-z0-9+.-], starting with an alphanumeric.
func validPackageName(name string) bool {
	if len(name) < 2 {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case i > 0 && (r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// EnsureValid ensures that the configuration is valid.
func (c *Configuration) EnsureValid() error {
	if c == nil {
		return errors.New("nil configuration")
	}

	if c.Package.Name == "" {
		return errors.New("package name not specified")
	} else if !validPackageName(c.Package.Name) {
		return errors.Errorf("invalid package name: %s", c.Package.Name)
	}
	for _, field := range []string{c.Package.Version, c.Package.Section, c.Package.Maintainer, c.Package.Description} {
		if strings.ContainsAny(field, "\r\n") {
			return errors.New("package metadata must be single-line")
		}
	}

	if c.Build.Command == "" {
		return errors.New("build command not specified")
	}

	if c.Watch.PollInterval < 0 {
		return errors.New("negative poll interval")
	}

	for _, pattern := range c.Stage.Exclude {
		if !exclude.ValidPattern(pattern) {
			return errors.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	return nil
}

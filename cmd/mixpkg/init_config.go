package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mixpkg/mixpkg/cmd"
	"github.com/mixpkg/mixpkg/pkg/configuration"
)

// initConfigMain is the entry point for the init-config command.
func initConfigMain(_ *cobra.Command, arguments []string) error {
	path := configuration.DefaultPath
	if len(arguments) == 1 {
		path = arguments[0]
	}
	return writeConfiguration(path, initConfigConfiguration.packageName, initConfigConfiguration.force)
}

// writeConfiguration writes a default configuration file.
func writeConfiguration(path, name string, force bool) error {
	if !force {
		if _, err := os.Lstat(path); err == nil {
			return errors.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return errors.Wrap(err, "unable to query configuration path")
		}
	}

	c := configuration.Default()
	c.Package.Name = name
	c.Package.Version = "0.1.0"
	c.Package.Priority = "optional"
	if err := c.Save(path); err != nil {
		return errors.Wrap(err, "unable to save configuration")
	}

	fmt.Println("Wrote", path)
	return nil
}

// initConfigCommand is the init-config command.
var initConfigCommand = &cobra.Command{
	Use:          "init-config [<path>]",
	Short:        "Write a default configuration file",
	Args:         cobra.MaximumNArgs(1),
	Run:          cmd.Mainify(initConfigMain),
	SilenceUsage: true,
}

// initConfigConfiguration stores configuration for the init-config command.
var initConfigConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// packageName is the package name to record.
	packageName string
	// force indicates whether or not to overwrite an existing file.
	force bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := initConfigCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&initConfigConfiguration.help, "help", "h", false, "Show help information")

	// Wire up flags.
	flags.StringVarP(&initConfigConfiguration.packageName, "pkg-name", "n", "", "The package name to record")
	flags.BoolVarP(&initConfigConfiguration.force, "force", "f", false, "Overwrite an existing configuration file")
}

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mixpkg/mixpkg/cmd"

	"github.com/mixpkg/mixpkg/pkg/configuration"
	"github.com/mixpkg/mixpkg/pkg/logging"
	"github.com/mixpkg/mixpkg/pkg/mixpkg"
)

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, arguments []string) error {
	cmd.ConfigureColor()

	s, err := newSettings(&rootConfiguration, command.Flags().Changed, arguments)
	if err != nil {
		return err
	}

	ctx, stop := cmd.TerminationContext(context.Background())
	defer stop()

	return run(ctx, s, logging.RootLogger)
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:     "mixpkg -s <sysroot> [flags] [--] [<make-arguments>...]",
	Version: mixpkg.Version,
	Short:   "Run a build's install step against a sysroot and package what it installs as a DEB",
	Long: `mixpkg watches a sysroot with inotify while running "make install" (or the
specified make arguments), collects the files that the build created, copies
them into an output tree, writes DEBIAN/control, opens it in $EDITOR, and runs
"dpkg -b" to produce <pkg-name>.deb in the working directory.`,
	Args:         cobra.ArbitraryArgs,
	Run:          cmd.Mainify(rootMain),
	SilenceUsage: true,
}

// rootFlags stores configuration for the root command.
type rootFlags struct {
	// help indicates whether or not to show help information and exit.
	help bool
	// sysroot is the directory to watch.
	sysroot string
	// output is the package tree directory.
	output string
	// packageName is the package name.
	packageName string
	// reserve indicates whether or not staged items should be kept.
	reserve bool
	// maximumDepth is the watch recursion depth.
	maximumDepth int
	// config is the configuration file path.
	config string
	// environmentFile is a dotenv file for the build environment.
	environmentFile string
	// noEdit disables interactive control file editing.
	noEdit bool
}

// rootConfiguration stores the parsed root command flags.
var rootConfiguration rootFlags

func init() {
	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Disable Cobra's use of mousetrap.
	cobra.MousetrapHelpText = ""

	// Set the template used by the version flag.
	rootCommand.SetVersionTemplate("mixpkg version {{ .Version }}\n")

	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Stop flag parsing at the first positional argument so that make flags
	// pass through untouched.
	flags.SetInterspersed(false)

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Wire up flags.
	flags.StringVarP(&rootConfiguration.sysroot, "sysroot", "s", "", "The sysroot directory that the build installs into")
	flags.StringVarP(&rootConfiguration.output, "output", "o", ".", "The directory where installed files are staged for packaging")
	flags.StringVarP(&rootConfiguration.packageName, "pkg-name", "n", "", "The name of the package to generate")
	flags.BoolVarP(&rootConfiguration.reserve, "reserve", "r", false, "Keep staged items in the output directory after packaging")
	flags.IntVarP(&rootConfiguration.maximumDepth, "max-depth", "d", configuration.DefaultMaximumDepth, "The sysroot watch depth (negative for unlimited)")
	flags.StringVarP(&rootConfiguration.config, "config", "c", "", "The configuration file (defaults to "+configuration.DefaultPath+" if present)")
	flags.StringVarP(&rootConfiguration.environmentFile, "env-file", "e", "", "A dotenv file applied to the build environment")
	flags.BoolVar(&rootConfiguration.noEdit, "no-edit", false, "Don't open the control file in an editor")

	rootCommand.MarkFlagRequired("sysroot")

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		versionCommand,
		initConfigCommand,
	)
}

func main() {
	// Execute the root command.
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

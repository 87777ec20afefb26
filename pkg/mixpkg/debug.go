package mixpkg

import (
	"os"
)

const (
	// DebugEnvironmentVariable is the environment variable that enables debug
	// logging when set to "1".
	DebugEnvironmentVariable = "MIXPKG_DEBUG"
	// LogLevelEnvironmentVariable is the environment variable that selects the
	// root log level by name.
	LogLevelEnvironmentVariable = "MIXPKG_LOG_LEVEL"
)

// DebugEnabled controls whether or not debugging is enabled for mixpkg. It is
// set automatically based on the MIXPKG_DEBUG environment variable.
var DebugEnabled bool

func init() {
	// Check whether or not debugging should be enabled.
	DebugEnabled = os.Getenv(DebugEnvironmentVariable) == "1"
}

package mixpkg

import (
	"fmt"
)

const (
	// VersionMajor represents the current major version of mixpkg.
	VersionMajor = 0
	// VersionMinor represents the current minor version of mixpkg.
	VersionMinor = 2
	// VersionPatch represents the current patch version of mixpkg.
	VersionPatch = 0
	// VersionTag represents a tag to be appended to the version string. It must
	// not contain spaces. If empty, no tag is appended to the version string.
	VersionTag = ""
)

// Version provides a stringified version of the current mixpkg version.
var Version string

// init performs global initialization.
func init() {
	Version = formatVersion(VersionMajor, VersionMinor, VersionPatch, VersionTag)
}

// formatVersion computes a version string from its components.
func formatVersion(major, minor, patch uint, tag string) string {
	if tag != "" {
		return fmt.Sprintf("%d.%d.%d-%s", major, minor, patch, tag)
	}
	return fmt.Sprintf("%d.%d.%d", major, minor, patch)
}

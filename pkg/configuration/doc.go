// Package configuration provides loading facilities for mixpkg's YAML
// configuration files. A configuration file describes the package metadata,
// the build invocation, watch parameters, and staging rules for a project.
package configuration

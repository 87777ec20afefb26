package debian

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/configuration"
	"github.com/mixpkg/mixpkg/pkg/filesystem"
	"github.com/mixpkg/mixpkg/pkg/logging"
)

const (
	// ControlDirectoryName is the name of the package control directory.
	ControlDirectoryName = "DEBIAN"
	// ControlFileName is the name of the control file.
	ControlFileName = "control"
	// controlDirectoryPermissions are the permissions required by dpkg-deb
	// for the control directory.
	controlDirectoryPermissions = 0755
	// controlFilePermissions are the control file permissions.
	controlFilePermissions = 0644
)

// RenderControl renders a control file for the specified package metadata.
// Required fields are always present, even if empty, so that they can be
// filled in by hand. Priority and Depends are only present if set.
func RenderControl(metadata *configuration.Package) []byte {
	var buffer bytes.Buffer
	field := func(name, value string) {
		fmt.Fprintf(&buffer, "%s: %s\n", name, value)
	}

	field("Package", metadata.Name)
	field("Version", metadata.Version)
	field("Section", metadata.Section)
	if metadata.Priority != "" {
		field("Priority", metadata.Priority)
	}
	field("Architecture", metadata.Architecture)
	field("Maintainer", metadata.Maintainer)
	if len(metadata.Depends) > 0 {
		field("Depends", strings.Join(metadata.Depends, ", "))
	}
	field("Description", metadata.Description)

	return buffer.Bytes()
}

// ControlPath returns the control file path within an output tree.
func ControlPath(output string) string {
	return filesystem.Join(filesystem.Join(output, ControlDirectoryName), ControlFileName)
}

// WriteControl creates the control directory within the output tree and
// atomically writes the control file into it. It returns the control file
// path.
func WriteControl(output string, metadata *configuration.Package, logger *logging.Logger) (string, error) {
	directory := filesystem.Join(output, ControlDirectoryName)
	if err := os.MkdirAll(directory, controlDirectoryPermissions); err != nil {
		return "", errors.Wrap(err, "unable to create control directory")
	}

	path := ControlPath(output)
	if err := filesystem.WriteFileAtomic(path, RenderControl(metadata), controlFilePermissions, logger); err != nil {
		return "", errors.Wrap(err, "unable to write control file")
	}
	logger.Debugf("Wrote %s", path)

	return path, nil
}

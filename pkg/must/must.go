// Package must provides wrappers for cleanup operations whose failures can't be
// acted upon. Failures are reported to a logger as warnings instead of being
// silently dropped.
package must

import (
	"io"
	"os"

	"github.com/mixpkg/mixpkg/pkg/logging"
)

func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("Unable to close: %s", err.Error())
	}
}

func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("Unable to remove '%s': %s", name, err.Error())
	}
}

func OSRemoveAll(path string, logger *logging.Logger) {
	if err := os.RemoveAll(path); err != nil {
		logger.Warnf("Unable to remove '%s' recursively: %s", path, err.Error())
	}
}

func Succeed(err error, task string, logger *logging.Logger) {
	if err != nil {
		logger.Warnf("Unable to succeed at %s; %s", task, err.Error())
	}
}

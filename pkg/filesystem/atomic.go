package filesystem

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/logging"
	"github.com/mixpkg/mixpkg/pkg/must"
)

const (
	// atomicWriteTemporaryNamePrefix is the file name prefix to use for
	// intermediate temporary files used in atomic writes.
	atomicWriteTemporaryNamePrefix = TemporaryNamePrefix + "atomic-write-"
)

// WriteFileAtomic writes a file to disk in an atomic fashion by using an
// intermediate temporary file that is swapped in place using a rename
// operation.
func WriteFileAtomic(path string, data []byte, permissions os.FileMode, logger *logging.Logger) error {
	// Compute a unique temporary name alongside the target.
	identifier, err := uuid.NewRandom()
	if err != nil {
		return errors.Wrap(err, "unable to generate temporary file name")
	}
	temporaryPath := filepath.Join(filepath.Dir(path), atomicWriteTemporaryNamePrefix+identifier.String())

	// Create the temporary file exclusively.
	temporary, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return errors.Wrap(err, "unable to create temporary file")
	}

	// Write data.
	if _, err = temporary.Write(data); err != nil {
		must.Close(temporary, logger)
		must.OSRemove(temporaryPath, logger)
		return errors.Wrap(err, "unable to write data to temporary file")
	}

	// Close out the file.
	if err = temporary.Close(); err != nil {
		must.OSRemove(temporaryPath, logger)
		return errors.Wrap(err, "unable to close temporary file")
	}

	// Set the file's permissions.
	if err = os.Chmod(temporaryPath, permissions); err != nil {
		must.OSRemove(temporaryPath, logger)
		return errors.Wrap(err, "unable to change file permissions")
	}

	// Rename the file.
	if err = os.Rename(temporaryPath, path); err != nil {
		must.OSRemove(temporaryPath, logger)
		return errors.Wrap(err, "unable to rename file")
	}

	// Success.
	return nil
}

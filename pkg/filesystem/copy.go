package filesystem

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/logging"
	"github.com/mixpkg/mixpkg/pkg/must"
)

// CopyTree recursively copies the filesystem object at source to destination,
// with semantics equivalent to "cp -R": regular files are copied with their
// permission bits, directories are created (or merged into, if they already
// exist) and their contents copied, and symbolic links are recreated rather
// than followed. Any other type of filesystem object is rejected. It returns
// the number of regular file bytes copied.
func CopyTree(source, destination string, logger *logging.Logger) (uint64, error) {
	return CopyTreeFiltered(source, destination, nil, logger)
}

// CopyFilter decides whether or not a filesystem object encountered during a
// copy should be skipped. It receives the object's source path and metadata.
type CopyFilter func(path string, metadata os.FileInfo) bool

// CopyTreeFiltered is CopyTree with a filter that's consulted for every object
// in the tree, including source itself. A nil filter skips nothing.
func CopyTreeFiltered(source, destination string, filter CopyFilter, logger *logging.Logger) (uint64, error) {
	metadata, err := os.Lstat(source)
	if err != nil {
		return 0, errors.Wrap(err, "unable to query source metadata")
	}

	if filter != nil && filter(source, metadata) {
		logger.Debugf("Skipping %s", source)
		return 0, nil
	}

	switch mode := metadata.Mode(); {
	case mode&os.ModeSymlink != 0:
		return 0, copySymbolicLink(source, destination)
	case mode.IsDir():
		return copyDirectory(source, destination, mode.Perm(), filter, logger)
	case mode.IsRegular():
		return copyFile(source, destination, mode.Perm(), logger)
	default:
		return 0, errors.Errorf("unsupported file type at %s", source)
	}
}

// copySymbolicLink recreates the symbolic link at source at destination,
// replacing any existing non-directory object.
func copySymbolicLink(source, destination string) error {
	target, err := os.Readlink(source)
	if err != nil {
		return errors.Wrap(err, "unable to read symbolic link target")
	}
	if err := os.Remove(destination); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "unable to remove existing destination")
	}
	if err := os.Symlink(target, destination); err != nil {
		return errors.Wrap(err, "unable to create symbolic link")
	}
	return nil
}

// copyDirectory copies a directory and its contents.
func copyDirectory(source, destination string, permissions os.FileMode, filter CopyFilter, logger *logging.Logger) (uint64, error) {
	// Create the destination directory. We create it with owner write access
	// so that we can populate it and then apply the real permissions once its
	// contents are in place.
	if err := os.Mkdir(destination, permissions|0700); err != nil {
		if !os.IsExist(err) {
			return 0, errors.Wrap(err, "unable to create directory")
		} else if metadata, statErr := os.Lstat(destination); statErr != nil {
			return 0, errors.Wrap(statErr, "unable to query existing destination")
		} else if !metadata.IsDir() {
			return 0, errors.Errorf("destination exists and is not a directory: %s", destination)
		}
	}

	// Read source contents.
	entries, err := os.ReadDir(source)
	if err != nil {
		return 0, errors.Wrap(err, "unable to read directory contents")
	}

	// Copy each entry.
	var copied uint64
	for _, entry := range entries {
		n, err := CopyTreeFiltered(Join(source, entry.Name()), Join(destination, entry.Name()), filter, logger)
		copied += n
		if err != nil {
			return copied, errors.Wrapf(err, "unable to copy %s", entry.Name())
		}
	}

	// Apply the final permissions.
	if err := os.Chmod(destination, permissions); err != nil {
		return copied, errors.Wrap(err, "unable to set directory permissions")
	}

	return copied, nil
}

// copyFile copies a regular file's contents and permissions.
func copyFile(source, destination string, permissions os.FileMode, logger *logging.Logger) (uint64, error) {
	input, err := os.Open(source)
	if err != nil {
		return 0, errors.Wrap(err, "unable to open source file")
	}
	defer must.Close(input, logger)

	output, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, permissions|0200)
	if err != nil {
		return 0, errors.Wrap(err, "unable to create destination file")
	}

	copied, err := io.Copy(output, input)
	if err != nil {
		must.Close(output, logger)
		return uint64(copied), errors.Wrap(err, "unable to copy file contents")
	}
	if err := output.Close(); err != nil {
		return uint64(copied), errors.Wrap(err, "unable to close destination file")
	}

	// Apply the exact permissions, since the creation mode is subject to the
	// umask and isn't applied to pre-existing files.
	if err := os.Chmod(destination, permissions); err != nil {
		return uint64(copied), errors.Wrap(err, "unable to set file permissions")
	}

	return uint64(copied), nil
}

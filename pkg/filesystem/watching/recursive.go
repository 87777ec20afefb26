package watching

import (
	"io/fs"
	"math"
	"os"
	"syscall"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/filesystem"
)

const (
	// descendantMaskFlags are added to the mask for watches below the root.
	// Entries are only descended into if they're real directories, so these
	// flags keep a racing replacement (e.g. by a symbolic link) from being
	// watched in their place.
	descendantMaskFlags = MaskOnlyDir | MaskDontFollow
)

// isPermissionDenied returns whether or not err indicates a permission
// failure.
func isPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

// isVanished returns whether or not err indicates that a path disappeared or
// changed type between being enumerated and being accessed.
func isVanished(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// WatchRecursively installs a watch on root and, if root is a directory, on
// every directory beneath it up to maxDepth levels down. A negative maxDepth is
// unbounded and a zero maxDepth watches only root. Symbolic links to
// directories are never descended into.
//
// Only the watch on root is mandatory: failure to install it is returned as a
// *WatchInstallError. Below the root, directories that can't be watched or read
// due to permissions are logged and skipped, as are directories that vanish
// mid-walk, and other watch installation failures are logged as warnings.
// Failures to read a directory for any other reason abort the walk.
func (r *Registry) WatchRecursively(root string, mask Mask, maxDepth int) error {
	if root == "" {
		return errors.Wrap(ErrInvalidArgument, "empty root path")
	}
	if maxDepth < 0 {
		maxDepth = math.MaxInt32
	}

	// Install the mandatory root watch.
	handle, err := r.AddWatch(root, mask)
	if err != nil {
		return err
	}

	// If the root isn't a directory, then the single watch is all there is.
	metadata, err := os.Stat(root)
	if err != nil {
		if isVanished(err) {
			r.logger.Debugf("Watch root %s vanished after watch installation", root)
			return nil
		}
		return &WatchInstallError{Path: root, Cause: err}
	} else if !metadata.IsDir() {
		return nil
	}
	r.record(handle, root)

	if maxDepth == 0 {
		return nil
	}
	return r.descend(root, mask, maxDepth)
}

// descend watches the subdirectories of path, which is itself already
// watched. The depth is the number of levels below path that may be watched.
func (r *Registry) descend(path string, mask Mask, depth int) error {
	entries, err := r.readDir(path)
	if err != nil {
		if isPermissionDenied(err) {
			r.logger.Infof("Can't open %s: %v", path, err)
			return nil
		} else if isVanished(err) {
			r.logger.Debugf("Directory %s vanished during traversal", path)
			return nil
		}
		return &WatchInstallError{Path: path, Cause: err}
	}

	for _, entry := range entries {
		// Only real directories are watched. Directory entry types come from
		// lstat semantics, so symbolic links never register as directories.
		name := entry.Name()
		if name == "." || name == ".." || !entry.IsDir() {
			continue
		}
		child := filesystem.Join(path, name)

		handle, err := r.AddWatch(child, mask|descendantMaskFlags)
		if err != nil {
			if isPermissionDenied(err) {
				r.logger.Infof("Can't watch %s: %v", child, err)
			} else if isVanished(err) {
				r.logger.Debugf("Directory %s vanished before it could be watched", child)
			} else {
				r.logger.Warn(err)
			}
			continue
		}
		r.record(handle, child)

		if depth > 1 {
			if err := r.descend(child, mask, depth-1); err != nil {
				return err
			}
		}
	}

	return nil
}

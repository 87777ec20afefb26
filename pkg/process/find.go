package process

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// ErrCommandNotFound indicates that a command couldn't be located.
var ErrCommandNotFound = errors.New("unable to locate command")

// FindCommand searches for a command with the specified name within the
// specified list of directories. It's similar to os/exec.LookPath, except that
// it allows one to manually specify paths, and it uses a slightly simpler
// lookup mechanism.
func FindCommand(name string, paths []string) (string, error) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		target := filepath.Join(path, ExecutableName(name, runtime.GOOS))

		if metadata, err := os.Stat(target); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", errors.Wrap(err, "unable to query file metadata")
		} else if metadata.Mode()&os.ModeType != 0 {
			continue
		} else {
			return target, nil
		}
	}

	return "", errors.Wrapf(ErrCommandNotFound, "%s", name)
}

// SearchPath returns the directories listed in the PATH environment variable.
func SearchPath() []string {
	return strings.Split(os.Getenv("PATH"), string(os.PathListSeparator))
}

// LookupCommand resolves a command name. Names containing a path separator are
// used as-is (after verifying that they exist), while others are searched for
// in PATH.
func LookupCommand(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) {
		if _, err := os.Stat(name); err != nil {
			if os.IsNotExist(err) {
				return "", errors.Wrapf(ErrCommandNotFound, "%s", name)
			}
			return "", errors.Wrap(err, "unable to query file metadata")
		}
		return name, nil
	}
	return FindCommand(name, SearchPath())
}

// Package encoding provides file loading and saving helpers for structured
// data formats.
package encoding

import (
	"os"

	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/filesystem"
)

// LoadAndUnmarshal reads the data at the specified path and invokes the
// specified unmarshaling callback (usually a closure) to decode it.
// Non-existence errors are returned unwrapped so that callers can detect them
// with os.IsNotExist.
func LoadAndUnmarshal(path string, unmarshal func([]byte) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		return errors.Wrap(err, "unable to load file")
	}

	if err := unmarshal(data); err != nil {
		return errors.Wrap(err, "unable to unmarshal data")
	}

	return nil
}

// MarshalAndSave invokes the specified marshaling callback (usually a closure)
// and writes the result atomically to the specified path with the specified
// permissions.
func MarshalAndSave(path string, permissions os.FileMode, marshal func() ([]byte, error)) error {
	data, err := marshal()
	if err != nil {
		return errors.Wrap(err, "unable to marshal data")
	}

	if err := filesystem.WriteFileAtomic(path, data, permissions, nil); err != nil {
		return errors.Wrap(err, "unable to write data")
	}

	return nil
}

package configuration

import (
	"github.com/dustin/go-humanize"
)

// ByteSize is a uint64 value that supports unmarshaling from both
// human-friendly string representations (e.g. "100 MB") and numeric
// representations. It can be cast to a uint64 value, where it represents a
// byte count.
type ByteSize uint64

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ByteSize) UnmarshalText(textBytes []byte) error {
	value, err := humanize.ParseBytes(string(textBytes))
	if err != nil {
		return err
	}
	*s = ByteSize(value)
	return nil
}

// String returns a human-friendly representation of the size.
func (s ByteSize) String() string {
	return humanize.Bytes(uint64(s))
}

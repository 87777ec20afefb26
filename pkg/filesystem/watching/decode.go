package watching

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

const (
	// recordHeaderSize is the size of the fixed portion of an inotify event
	// record: a 32-bit watch descriptor, mask, cookie, and name length.
	recordHeaderSize = 16
)

// Resolver maps watch handles to the directories they watch.
type Resolver interface {
	// Resolve returns the directory registered for handle, if any.
	Resolve(handle WatchHandle) (string, bool)
}

// Decode parses a buffer of back-to-back raw inotify event records in host
// byte order. It returns the decoded events in kernel order along with the
// number of bytes consumed. A trailing partial record stops decoding without
// error, so the consumed count may be less than the buffer length.
//
// A record with a zero watch descriptor continues the event decoded immediately
// before it: it inherits that event's handle, file, and directory and supplies
// its own mask and cookie. A continuation with no predecessor, or a name length
// that overflows the record size, yields ErrMalformedEventStream and no events.
//
// Directories are looked up through resolver, which may be nil.
func Decode(buffer []byte, resolver Resolver) ([]Event, int, error) {
	var events []Event
	cursor := 0

	for len(buffer)-cursor >= recordHeaderSize {
		header := buffer[cursor : cursor+recordHeaderSize]
		handle := WatchHandle(int32(binary.NativeEndian.Uint32(header[0:4])))
		mask := Mask(binary.NativeEndian.Uint32(header[4:8]))
		cookie := binary.NativeEndian.Uint32(header[8:12])
		nameLength := binary.NativeEndian.Uint32(header[12:16])

		// Compute the record size, rejecting lengths that can't be represented.
		if nameLength > math.MaxUint32-recordHeaderSize {
			return nil, 0, errors.Wrapf(ErrMalformedEventStream,
				"record at offset %d has invalid name length %d", cursor, nameLength,
			)
		}
		recordSize := uint64(recordHeaderSize) + uint64(nameLength)

		// Stop at a truncated trailing record.
		if uint64(len(buffer)-cursor) < recordSize {
			break
		}
		record := buffer[cursor : cursor+int(recordSize)]

		// Extract the name, dropping the terminator and any padding.
		var name string
		if nameLength > 0 {
			raw := record[recordHeaderSize:]
			if terminator := bytes.IndexByte(raw, 0); terminator >= 0 {
				raw = raw[:terminator]
			}
			name = string(raw)
		}

		if handle == 0 {
			if len(events) == 0 {
				return nil, 0, errors.Wrapf(ErrMalformedEventStream,
					"continuation record at offset %d has no preceding event", cursor,
				)
			}
			previous := events[len(events)-1]
			events = append(events, Event{
				Handle:    previous.Handle,
				Mask:      mask,
				Cookie:    cookie,
				File:      previous.File,
				Directory: previous.Directory,
			})
		} else {
			var directory string
			if resolver != nil {
				directory, _ = resolver.Resolve(handle)
			}
			events = append(events, Event{
				Handle:    handle,
				Mask:      mask,
				Cookie:    cookie,
				File:      name,
				Directory: directory,
			})
		}

		cursor += int(recordSize)
	}

	return events, cursor, nil
}

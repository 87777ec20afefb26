package watching

import (
	"fmt"
	"strings"
)

// Mask is an inotify event mask. Bits that don't correspond to a named
// constant are carried through decoding untouched.
type Mask uint32

// Event bits, matching the values in <sys/inotify.h>. They're spelled out so
// that event decoding and classification behave identically on every platform;
// the Linux kernel interface verifies them against golang.org/x/sys/unix.
const (
	MaskAccess       Mask = 0x00000001 // File was accessed
	MaskModify       Mask = 0x00000002 // File was modified
	MaskAttrib       Mask = 0x00000004 // Metadata changed
	MaskCloseWrite   Mask = 0x00000008 // Writable file was closed
	MaskCloseNoWrite Mask = 0x00000010 // Unwritable file closed
	MaskOpen         Mask = 0x00000020 // File was opened
	MaskMovedFrom    Mask = 0x00000040 // File was moved from X
	MaskMovedTo      Mask = 0x00000080 // File was moved to Y
	MaskCreate       Mask = 0x00000100 // Subfile was created
	MaskDelete       Mask = 0x00000200 // Subfile was deleted
	MaskDeleteSelf   Mask = 0x00000400 // Self was deleted
	MaskMoveSelf     Mask = 0x00000800 // Self was moved

	MaskUnmount    Mask = 0x00002000 // Backing filesystem was unmounted
	MaskQueueFull  Mask = 0x00004000 // Event queue overflowed
	MaskIgnored    Mask = 0x00008000 // Watch was removed
	MaskIsDir      Mask = 0x40000000 // Event subject is a directory
	MaskOnlyDir    Mask = 0x01000000 // Only watch the path if it's a directory
	MaskDontFollow Mask = 0x02000000 // Don't follow a symbolic link
	MaskExclUnlink Mask = 0x04000000 // Exclude events on unlinked objects
	MaskAdd        Mask = 0x20000000 // Add to the mask of an existing watch
	MaskOneShot    Mask = 0x80000000 // Only send the event once

	// MaskClose is the combination of both close events.
	MaskClose = MaskCloseWrite | MaskCloseNoWrite
	// MaskMove is the combination of both move events.
	MaskMove = MaskMovedFrom | MaskMovedTo
	// MaskAllEvents is the combination of all watchable events.
	MaskAllEvents = MaskAccess | MaskModify | MaskAttrib | MaskClose | MaskOpen |
		MaskMove | MaskCreate | MaskDelete | MaskDeleteSelf | MaskMoveSelf
)

// maskNames lists named bits in rendering order.
var maskNames = []struct {
	bit  Mask
	name string
}{
	{MaskAccess, "ACCESS"},
	{MaskModify, "MODIFY"},
	{MaskAttrib, "ATTRIB"},
	{MaskCloseWrite, "CLOSE_WRITE"},
	{MaskCloseNoWrite, "CLOSE_NOWRITE"},
	{MaskOpen, "OPEN"},
	{MaskMovedFrom, "MOVED_FROM"},
	{MaskMovedTo, "MOVED_TO"},
	{MaskCreate, "CREATE"},
	{MaskDelete, "DELETE"},
	{MaskDeleteSelf, "DELETE_SELF"},
	{MaskMoveSelf, "MOVE_SELF"},
	{MaskUnmount, "UNMOUNT"},
	{MaskQueueFull, "Q_OVERFLOW"},
	{MaskIgnored, "IGNORED"},
	{MaskOnlyDir, "ONLYDIR"},
	{MaskDontFollow, "DONT_FOLLOW"},
	{MaskExclUnlink, "EXCL_UNLINK"},
	{MaskAdd, "MASK_ADD"},
	{MaskIsDir, "ISDIR"},
	{MaskOneShot, "ONESHOT"},
}

// Has returns whether or not any of the bits in flags are set in the mask.
func (m Mask) Has(flags Mask) bool {
	return m&flags != 0
}

// String renders the set bits of the mask separated by '|', with any unnamed
// bits rendered in hexadecimal.
func (m Mask) String() string {
	if m == 0 {
		return "0"
	}

	var names []string
	remaining := m
	for _, n := range maskNames {
		if m&n.bit != 0 {
			names = append(names, n.name)
			remaining &^= n.bit
		}
	}
	if remaining != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(remaining)))
	}

	return strings.Join(names, "|")
}

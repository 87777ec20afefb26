// Package tracking folds filesystem events into the set of files that an
// installation produced.
package tracking

import (
	"github.com/mixpkg/mixpkg/pkg/filesystem"
	"github.com/mixpkg/mixpkg/pkg/filesystem/watching"
)

// Record is a retained event that signified the creation of a file or
// directory.
type Record struct {
	// Handle is the watch that reported the creation.
	Handle watching.WatchHandle
	// Mask is the mask of the creating event.
	Mask watching.Mask
	// Cookie is the rename cookie of the creating event.
	Cookie uint32
	// File is the name of the created entry.
	File string
	// Directory is the directory containing the entry.
	Directory string
}

// Path returns the full path of the created entry.
func (r Record) Path() string {
	return filesystem.Join(r.Directory, r.File)
}

// Set is the ordered collection of records for entries believed to exist as a
// result of observed activity. It isn't safe for concurrent usage.
type Set struct {
	// records are the retained records in insertion order.
	records []Record
}

// Apply folds an event into the set and reports whether or not the set changed.
//
// An event carrying the moved-from bit removes the first record with the same
// file and directory (if any). Otherwise, an event carrying the create bit is
// appended. All other events are ignored. Moves into the tree are not
// retained, and neither are deletions tracked.
func (s *Set) Apply(event watching.Event) bool {
	if event.Mask.Has(watching.MaskMovedFrom) {
		for i, r := range s.records {
			if r.File == event.File && r.Directory == event.Directory {
				s.records = append(s.records[:i], s.records[i+1:]...)
				return true
			}
		}
		return false
	} else if event.Mask.Has(watching.MaskCreate) {
		s.records = append(s.records, Record{
			Handle:    event.Handle,
			Mask:      event.Mask,
			Cookie:    event.Cookie,
			File:      event.File,
			Directory: event.Directory,
		})
		return true
	}
	return false
}

// Records returns a copy of the records in insertion order.
func (s *Set) Records() []Record {
	result := make([]Record, len(s.records))
	copy(result, s.records)
	return result
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.records)
}

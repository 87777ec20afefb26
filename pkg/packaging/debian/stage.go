// Package debian assembles Debian binary package trees from installation
// records and builds them with dpkg.
package debian

import (
	"os"
	pathpkg "path"

	"github.com/dustin/go-humanize"
	"github.com/golang/groupcache/lru"
	"github.com/pkg/errors"

	"github.com/mixpkg/mixpkg/pkg/filesystem"
	"github.com/mixpkg/mixpkg/pkg/logging"
	"github.com/mixpkg/mixpkg/pkg/packaging/exclude"
	"github.com/mixpkg/mixpkg/pkg/tracking"
)

const (
	// directoryCacheSize is the number of output directories that the stager
	// remembers as already existing.
	directoryCacheSize = 256
	// stagedDirectoryPermissions are the permissions for output directories
	// created by the stager.
	stagedDirectoryPermissions = 0755
)

// StagerOptions configure a Stager.
type StagerOptions struct {
	// Sysroot is the installation root whose records are staged.
	Sysroot string
	// Output is the package tree root.
	Output string
	// Exclude are exclude patterns relative to Sysroot.
	Exclude []string
	// MaximumFileSize is the size above which regular files are skipped. Zero
	// is unlimited.
	MaximumFileSize uint64
}

// Summary describes a staging pass.
type Summary struct {
	// Items is the number of records staged.
	Items int
	// Skipped is the number of records skipped.
	Skipped int
	// Bytes is the number of file content bytes copied.
	Bytes uint64
}

// String returns a human-readable rendering of the summary.
func (s *Summary) String() string {
	return humanize.Comma(int64(s.Items)) + " items staged (" +
		humanize.Bytes(s.Bytes) + "), " +
		humanize.Comma(int64(s.Skipped)) + " skipped"
}

// Stager copies installed entries from a sysroot into a package tree and keeps
// track of what it created so that it can clean up afterward.
type Stager struct {
	// sysroot is the installation root.
	sysroot string
	// output is the package tree root.
	output string
	// excluder is the exclude pattern matcher.
	excluder *exclude.Excluder
	// maximumFileSize is the regular file size limit.
	maximumFileSize uint64
	// logger is the stager logger.
	logger *logging.Logger
	// directories caches output directories known to exist.
	directories *lru.Cache
	// staged are the staged output paths in staging order.
	staged []string
	// stagedSet is the set of staged output paths.
	stagedSet map[string]bool
	// created are output directories created by the stager to hold staged
	// items, which didn't exist beforehand.
	created []string
}

// NewStager creates a new stager.
func NewStager(options *StagerOptions, logger *logging.Logger) (*Stager, error) {
	if options.Sysroot == "" {
		return nil, errors.New("empty sysroot")
	} else if options.Output == "" {
		return nil, errors.New("empty output directory")
	}

	excluder, err := exclude.NewExcluder(options.Exclude)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse exclude patterns")
	}

	return &Stager{
		sysroot:         options.Sysroot,
		output:          options.Output,
		excluder:        excluder,
		maximumFileSize: options.MaximumFileSize,
		logger:          logger,
		directories:     lru.New(directoryCacheSize),
		stagedSet:       make(map[string]bool),
	}, nil
}

// relative computes the sysroot-relative path of an installed path.
func (s *Stager) relative(path string) (string, bool) {
	return filesystem.Relative(s.sysroot, path)
}

// skip implements filesystem.CopyFilter.
func (s *Stager) skip(path string, metadata os.FileInfo) bool {
	relative, ok := s.relative(path)
	if !ok {
		return true
	}
	if s.excluder.Excluded(relative, metadata.IsDir()) {
		s.logger.Debugf("Excluding %s", relative)
		return true
	}
	if s.maximumFileSize > 0 && metadata.Mode().IsRegular() && uint64(metadata.Size()) > s.maximumFileSize {
		s.logger.Warnf("Skipping %s: size %s exceeds limit of %s",
			relative, humanize.Bytes(uint64(metadata.Size())), humanize.Bytes(s.maximumFileSize),
		)
		return true
	}
	return false
}

// ensureDirectory ensures that an output directory exists, recording the
// topmost directory that had to be created.
func (s *Stager) ensureDirectory(directory string) error {
	if _, ok := s.directories.Get(directory); ok {
		return nil
	}

	// Find the topmost missing ancestor.
	var missing string
	for current := directory; ; current = pathpkg.Dir(current) {
		if _, err := os.Lstat(current); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return errors.Wrap(err, "unable to query output directory")
		}
		missing = current
		if parent := pathpkg.Dir(current); parent == current {
			break
		}
	}

	if missing != "" {
		if err := os.MkdirAll(directory, stagedDirectoryPermissions); err != nil {
			return errors.Wrap(err, "unable to create output directory")
		}
		s.created = append(s.created, missing)
	}

	s.directories.Add(directory, struct{}{})
	return nil
}

// Stage copies the entries described by records into the output tree. Records
// whose entries no longer exist, that lie outside the sysroot, or that are
// excluded are skipped.
func (s *Stager) Stage(records []tracking.Record) (*Summary, error) {
	summary := &Summary{}

	for _, record := range records {
		installed := record.Path()
		relative, ok := s.relative(installed)
		if !ok || relative == "" {
			s.logger.Warnf("Skipping %s: outside of %s", installed, s.sysroot)
			summary.Skipped++
			continue
		}

		metadata, err := os.Lstat(installed)
		if err != nil {
			if os.IsNotExist(err) {
				s.logger.Warnf("Skipping %s: no longer present", installed)
				summary.Skipped++
				continue
			}
			return summary, errors.Wrapf(err, "unable to query %s", installed)
		}
		if s.skip(installed, metadata) {
			summary.Skipped++
			continue
		}

		destination := filesystem.Join(s.output, relative)
		if err := s.ensureDirectory(pathpkg.Dir(destination)); err != nil {
			return summary, err
		}

		s.logger.Debugf("Staging %s", relative)
		copied, err := filesystem.CopyTreeFiltered(installed, destination, s.skip, s.logger)
		summary.Bytes += copied
		if !s.stagedSet[destination] {
			s.stagedSet[destination] = true
			s.staged = append(s.staged, destination)
		}
		if err != nil {
			return summary, errors.Wrapf(err, "unable to stage %s", relative)
		}
		summary.Items++
	}

	return summary, nil
}

// Staged returns the staged output paths in staging order.
func (s *Stager) Staged() []string {
	result := make([]string, len(s.staged))
	copy(result, s.staged)
	return result
}

// Cleanup removes everything the stager created in the output tree, along with
// the control directory. Removal continues past failures, and the first
// failure is returned.
func (s *Stager) Cleanup() error {
	var first error
	remove := func(path string) {
		if err := os.RemoveAll(path); err != nil {
			s.logger.Warnf("Unable to remove %s: %v", path, err)
			if first == nil {
				first = errors.Wrapf(err, "unable to remove %s", path)
			}
		}
	}

	for i := len(s.staged) - 1; i >= 0; i-- {
		remove(s.staged[i])
	}
	for i := len(s.created) - 1; i >= 0; i-- {
		remove(s.created[i])
	}
	remove(filesystem.Join(s.output, ControlDirectoryName))

	s.staged = nil
	s.stagedSet = make(map[string]bool)
	s.created = nil
	s.directories.Clear()

	return first
}

// Package watching implements recursive filesystem watching on top of inotify.
//
// A Registry owns an inotify channel together with the mapping from watch
// handles to the directories they represent. WatchRecursively installs a watch
// on every directory of a tree, Poll waits for pending events and decodes
// them, and Decode turns raw event buffers into Events, merging continuation
// records with the event they continue.
//
// A Registry is not safe for concurrent usage. Watches are expected to be
// installed before a single goroutine begins polling.
package watching

import (
	"time"
)

const (
	// DefaultPollTimeout is the poll timeout used by event consumers that need
	// to observe cancellation promptly.
	DefaultPollTimeout = time.Second
	// DefaultMaximumDepth is the default recursion depth for watch
	// installation.
	DefaultMaximumDepth = 9
)

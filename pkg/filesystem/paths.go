package filesystem

import (
	"strings"
)

const (
	// separator is the path separator used by inotify paths.
	separator = "/"
)

// Join combines a parent path and a child path, guaranteeing that exactly one
// separator appears between them regardless of whether the parent ends with a
// separator or the child begins with one. An empty child yields the parent
// unchanged and an empty parent yields the child unchanged.
func Join(parent, child string) string {
	if child == "" {
		return parent
	} else if parent == "" {
		return child
	}

	return strings.TrimRight(parent, separator) + separator + strings.TrimLeft(child, separator)
}

// Relative computes the path of target relative to root. It returns false if
// target does not lie at or beneath root. The result never starts with a
// separator and is empty when target and root are equal.
func Relative(root, target string) (string, bool) {
	root = strings.TrimRight(root, separator)
	if !strings.HasPrefix(target, root) {
		return "", false
	}

	remainder := target[len(root):]
	if remainder == "" {
		return "", true
	} else if !strings.HasPrefix(remainder, separator) && root != "" {
		return "", false
	}

	return strings.TrimLeft(remainder, separator), true
}

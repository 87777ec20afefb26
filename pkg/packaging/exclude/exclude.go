// Package exclude implements doublestar-based exclusion of installed paths
// from staging. Patterns use gitignore-like conventions: a leading '!' negates
// a pattern, a leading '/' anchors it to the root, a trailing '/' restricts it
// to directories, and a pattern without a slash also matches base names.
package exclude

import (
	pathpkg "path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
)

// pattern is a single parsed exclude pattern.
type pattern struct {
	// negated indicates whether or not the pattern re-includes matches.
	negated bool
	// directoryOnly indicates whether or not the pattern only matches
	// directories.
	directoryOnly bool
	// matchLeaf indicates whether or not the pattern is also matched against
	// base names.
	matchLeaf bool
	// glob is the doublestar pattern.
	glob string
}

// parsePattern validates and parses a pattern.
func parsePattern(text string) (*pattern, error) {
	if text == "" || text == "!" {
		return nil, errors.New("empty pattern")
	} else if text == "/" || text == "!/" || text == "//" || text == "!//" {
		return nil, errors.New("root pattern")
	}

	negated := text[0] == '!'
	if negated {
		text = text[1:]
	}
	absolute := text[0] == '/'
	if absolute {
		text = text[1:]
	}
	directoryOnly := text[len(text)-1] == '/'
	if directoryOnly {
		text = text[:len(text)-1]
	}

	// Bad patterns are only detected when matching against a non-empty path.
	if _, err := doublestar.Match(text, "a"); err != nil {
		return nil, errors.Wrap(err, "unable to validate pattern")
	}

	return &pattern{
		negated:       negated,
		directoryOnly: directoryOnly,
		matchLeaf:     !absolute && !strings.Contains(text, "/"),
		glob:          text,
	}, nil
}

// matches returns whether or not the pattern matches a path.
func (p *pattern) matches(path string, directory bool) bool {
	if p.directoryOnly && !directory {
		return false
	}
	if match, _ := doublestar.Match(p.glob, path); match {
		return true
	}
	if p.matchLeaf && path != "" {
		match, _ := doublestar.Match(p.glob, pathpkg.Base(path))
		return match
	}
	return false
}

// ValidPattern returns whether or not a pattern is valid.
func ValidPattern(text string) bool {
	_, err := parsePattern(text)
	return err == nil
}

// Excluder is a parsed, ordered list of exclude patterns. The last matching
// pattern decides whether or not a path is excluded.
type Excluder struct {
	// patterns are the parsed patterns.
	patterns []*pattern
}

// NewExcluder parses a list of patterns.
func NewExcluder(patterns []string) (*Excluder, error) {
	parsed := make([]*pattern, len(patterns))
	for i, text := range patterns {
		p, err := parsePattern(text)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", text)
		}
		parsed[i] = p
	}
	return &Excluder{patterns: parsed}, nil
}

// Excluded returns whether or not a root-relative, slash-separated path is
// excluded. A nil excluder excludes nothing.
func (e *Excluder) Excluded(path string, directory bool) bool {
	if e == nil {
		return false
	}
	excluded := false
	for _, p := range e.patterns {
		if p.matches(path, directory) {
			excluded = !p.negated
		}
	}
	return excluded
}

package exclude

import (
	"testing"
)

func TestValidPattern(t *testing.T) {
	testCases := []struct {
		pattern  string
		expected bool
	}{
		{"", false},
		{"!", false},
		{"/", false},
		{"!//", false},
		{"[", false},
		{"*.la", true},
		{"!lib/*.a", true},
		{"/usr/share/doc/", true},
		{"**/*.pyc", true},
	}

	for _, testCase := range testCases {
		if valid := ValidPattern(testCase.pattern); valid != testCase.expected {
			t.Errorf("validity of pattern %q (%t) does not match expected (%t)",
				testCase.pattern, valid, testCase.expected,
			)
		}
	}
}

func TestExcluder(t *testing.T) {
	excluder, err := NewExcluder([]string{
		"*.la",
		"usr/share/doc/**",
		"cache/",
		"!usr/lib/keep.la",
	})
	if err != nil {
		t.Fatal("unable to create excluder:", err)
	}

	testCases := []struct {
		path      string
		directory bool
		expected  bool
	}{
		{"usr/lib/libfoo.la", false, true},
		{"usr/lib/libfoo.so", false, false},
		{"usr/lib/keep.la", false, false},
		{"usr/share/doc/foo/README", false, true},
		{"usr/share/man/man1/foo.1", false, false},
		{"var/cache", true, true},
		{"var/cache", false, false},
	}

	for _, testCase := range testCases {
		if excluded := excluder.Excluded(testCase.path, testCase.directory); excluded != testCase.expected {
			t.Errorf("exclusion of %s (%t) does not match expected (%t)",
				testCase.path, excluded, testCase.expected,
			)
		}
	}
}

func TestNilExcluder(t *testing.T) {
	var excluder *Excluder
	if excluder.Excluded("anything", false) {
		t.Error("nil excluder excluded path")
	}
}

func TestNewExcluderInvalid(t *testing.T) {
	if _, err := NewExcluder([]string{"ok", "["}); err == nil {
		t.Error("invalid pattern accepted")
	}
}

package filesystem

import (
	"testing"
)

// TestJoin tests separator handling in Join.
func TestJoin(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		parent   string
		child    string
		expected string
	}{
		{"/opt/sysroot", "usr", "/opt/sysroot/usr"},
		{"/opt/sysroot/", "usr", "/opt/sysroot/usr"},
		{"/opt/sysroot", "/usr", "/opt/sysroot/usr"},
		{"/opt/sysroot/", "/usr", "/opt/sysroot/usr"},
		{"/opt/sysroot//", "//usr/lib", "/opt/sysroot/usr/lib"},
		{"/", "etc", "/etc"},
		{"/", "/etc", "/etc"},
		{"/opt/sysroot", "", "/opt/sysroot"},
		{"", "usr", "usr"},
		{"relative", "child", "relative/child"},
	}

	// Process test cases.
	for _, testCase := range testCases {
		if result := Join(testCase.parent, testCase.child); result != testCase.expected {
			t.Errorf(
				"join of %q and %q (%q) does not match expected (%q)",
				testCase.parent, testCase.child, result, testCase.expected,
			)
		}
	}
}

// TestRelative tests relative path computation.
func TestRelative(t *testing.T) {
	// Set up test cases.
	testCases := []struct {
		root     string
		target   string
		expected string
		ok       bool
	}{
		{"/opt/sysroot", "/opt/sysroot/usr/bin/tool", "usr/bin/tool", true},
		{"/opt/sysroot/", "/opt/sysroot/usr/bin/tool", "usr/bin/tool", true},
		{"/opt/sysroot", "/opt/sysroot", "", true},
		{"/opt/sysroot", "/opt/sysrootx/file", "", false},
		{"/opt/sysroot", "/var/file", "", false},
		{"/", "/etc/passwd", "etc/passwd", true},
	}

	// Process test cases.
	for _, testCase := range testCases {
		result, ok := Relative(testCase.root, testCase.target)
		if ok != testCase.ok {
			t.Errorf("containment of %q in %q incorrect", testCase.target, testCase.root)
		} else if result != testCase.expected {
			t.Errorf("relative path (%q) does not match expected (%q)", result, testCase.expected)
		}
	}
}

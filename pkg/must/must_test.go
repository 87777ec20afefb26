package must

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mixpkg/mixpkg/pkg/logging"
)

// failingCloser is an io.Closer that always fails.
type failingCloser struct{}

// Close implements io.Closer.Close.
func (failingCloser) Close() error {
	return errors.New("close failed")
}

// TestCloseFailureIsLogged tests that close failures are reported as warnings.
func TestCloseFailureIsLogged(t *testing.T) {
	buffer := &bytes.Buffer{}
	Close(failingCloser{}, logging.NewLogger(logging.LevelWarn, buffer))
	if !strings.Contains(buffer.String(), "close failed") {
		t.Error("close failure not logged:", buffer.String())
	}
}

// TestOSRemoveAll tests recursive removal of a directory tree.
func TestOSRemoveAll(t *testing.T) {
	directory := t.TempDir()
	target := filepath.Join(directory, "tree")
	if err := os.MkdirAll(filepath.Join(target, "nested"), 0700); err != nil {
		t.Fatal("unable to create test tree:", err)
	}

	buffer := &bytes.Buffer{}
	OSRemoveAll(target, logging.NewLogger(logging.LevelWarn, buffer))

	if _, err := os.Lstat(target); !os.IsNotExist(err) {
		t.Error("tree still exists after removal")
	}
	if buffer.Len() != 0 {
		t.Error("unexpected warning output:", buffer.String())
	}
}

// TestSucceedWithNilLogger tests that a nil logger swallows failures.
func TestSucceedWithNilLogger(t *testing.T) {
	Succeed(errors.New("ignored"), "testing", nil)
}

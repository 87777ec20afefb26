package debian

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// installFakeCommand creates an executable shell script in a fresh directory
// and prepends that directory to PATH.
func installFakeCommand(t *testing.T, name, script string) string {
	t.Helper()
	directory := t.TempDir()
	if err := os.WriteFile(filepath.Join(directory, name), []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatal("unable to create fake command:", err)
	}
	t.Setenv("PATH", directory+string(os.PathListSeparator)+os.Getenv("PATH"))
	return directory
}

func TestBuild(t *testing.T) {
	directory := installFakeCommand(t, "mixpkg-test-dpkg", `echo "$@" > "$(dirname "$0")/arguments"`)
	previous := dpkgCommand
	dpkgCommand = "mixpkg-test-dpkg"
	defer func() { dpkgCommand = previous }()

	if err := Build(context.Background(), "/output", "foo.deb", nil); err != nil {
		t.Fatal("build failed:", err)
	}
	if data, err := os.ReadFile(filepath.Join(directory, "arguments")); err != nil {
		t.Fatal("unable to read recorded arguments:", err)
	} else if arguments := strings.TrimSpace(string(data)); arguments != "-b /output foo.deb" {
		t.Error("dpkg arguments incorrect:", arguments)
	}
}

func TestBuildFailure(t *testing.T) {
	installFakeCommand(t, "mixpkg-test-dpkg", "exit 2")
	previous := dpkgCommand
	dpkgCommand = "mixpkg-test-dpkg"
	defer func() { dpkgCommand = previous }()

	var buildErr *BuildError
	if err := Build(context.Background(), "/output", "foo.deb", nil); !errors.As(err, &buildErr) {
		t.Fatal("build failure has unexpected type:", err)
	} else if buildErr.ExitCode != 2 {
		t.Error("build failure exit code incorrect:", buildErr.ExitCode)
	}
}

func TestBuildMissingDpkg(t *testing.T) {
	previous := dpkgCommand
	dpkgCommand = "mixpkg-test-missing-dpkg"
	defer func() { dpkgCommand = previous }()

	if err := Build(context.Background(), "/output", "foo.deb", nil); !errors.Is(err, ErrDpkgNotFound) {
		t.Error("missing dpkg not reported as such:", err)
	}
}

func TestPackageFileName(t *testing.T) {
	if name := PackageFileName("libfoo"); name != "libfoo.deb" {
		t.Error("package file name incorrect:", name)
	}
}

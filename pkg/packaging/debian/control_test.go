package debian

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mixpkg/mixpkg/pkg/configuration"
)

// testPackage returns test package metadata.
func testPackage() *configuration.Package {
	return &configuration.Package{
		Name:         "libfoo",
		Version:      "1.2.0",
		Section:      "libs",
		Priority:     "optional",
		Architecture: "armhf",
		Maintainer:   "Jane Doe <jane@example.com>",
		Depends:      []string{"libc6", "zlib1g (>= 1.2)"},
		Description:  "Foo support library",
	}
}

func TestRenderControl(t *testing.T) {
	expected := "Package: libfoo\n" +
		"Version: 1.2.0\n" +
		"Section: libs\n" +
		"Priority: optional\n" +
		"Architecture: armhf\n" +
		"Maintainer: Jane Doe <jane@example.com>\n" +
		"Depends: libc6, zlib1g (>= 1.2)\n" +
		"Description: Foo support library\n"
	if rendered := string(RenderControl(testPackage())); rendered != expected {
		t.Errorf("rendered control file does not match expected:\n%s", rendered)
	}
}

func TestRenderControlMinimal(t *testing.T) {
	expected := "Package: foo\n" +
		"Version: \n" +
		"Section: \n" +
		"Architecture: \n" +
		"Maintainer: \n" +
		"Description: \n"
	if rendered := string(RenderControl(&configuration.Package{Name: "foo"})); rendered != expected {
		t.Errorf("rendered control file does not match expected:\n%s", rendered)
	}
}

func TestWriteControl(t *testing.T) {
	output := t.TempDir()
	path, err := WriteControl(output, testPackage(), nil)
	if err != nil {
		t.Fatal("unable to write control file:", err)
	} else if path != filepath.Join(output, "DEBIAN", "control") {
		t.Error("control file path incorrect:", path)
	}

	if data, err := os.ReadFile(path); err != nil {
		t.Fatal("unable to read control file:", err)
	} else if string(data) != string(RenderControl(testPackage())) {
		t.Error("control file contents incorrect")
	}
	if metadata, err := os.Stat(filepath.Join(output, "DEBIAN")); err != nil {
		t.Fatal("unable to query control directory:", err)
	} else if metadata.Mode().Perm() != 0755 {
		t.Error("control directory permissions incorrect:", metadata.Mode().Perm())
	}
}

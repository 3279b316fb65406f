package vfstest

import (
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// TestPathBackend tests Abs, Cwd, Chdir and Kind.
func TestPathBackend(t *testing.T, b core.Backend) {
	TestPathBackendWithConfig(t, b, Config{})
}

// TestPathBackendWithConfig tests path operations with configuration.
func TestPathBackendWithConfig(t *testing.T, b core.Backend, config Config) {
	runGroup(t, "PathBackend", b, config, []subtest{
		{"Kind", testKind},
		{"AbsRelative", testAbsRelative},
		{"AbsAbsolute", testAbsAbsolute},
		{"AbsInvalid", testAbsInvalid},
		{"AbsExpandsEnv", testAbsExpandsEnv},
		{"Chdir", testChdir},
		{"ChdirMissing", testChdirMissing},
		{"ChdirFile", testChdirFile},
	})
}

func testKind(t *testing.T, b core.Backend) {
	if b.Kind() == core.KindUnknown {
		t.Error("Kind(): got unknown, want a concrete kind")
	}
}

func testAbsRelative(t *testing.T, b core.Backend) {
	cwd, err := b.Cwd()
	if err != nil {
		t.Fatalf("Cwd(): %v", err)
	}

	got := abs(t, b, "a/./b/../c")
	if want := pathutil.Mash(cwd, "a/c"); got != want {
		t.Errorf("Abs(a/./b/../c): got %q, want %q", got, want)
	}
}

func testAbsAbsolute(t *testing.T, b core.Backend) {
	if got := abs(t, b, "//x//y/"); got != "/x/y" {
		t.Errorf("Abs(//x//y/): got %q, want %q", got, "/x/y")
	}
}

func testAbsInvalid(t *testing.T, b core.Backend) {
	_, err := b.Abs("")
	wantCode(t, `Abs("")`, err, errors.CodeInvalidPath)
}

func testAbsExpandsEnv(t *testing.T, b core.Backend) {
	t.Setenv("VFSTEST_SEGMENT", "expanded")
	t.Setenv("HOME", "/home/vfstest")

	if got := abs(t, b, "/opt/$VFSTEST_SEGMENT"); got != "/opt/expanded" {
		t.Errorf("Abs(/opt/$VFSTEST_SEGMENT): got %q, want %q", got, "/opt/expanded")
	}
	if got := abs(t, b, "~/notes"); got != "/home/vfstest/notes" {
		t.Errorf("Abs(~/notes): got %q, want %q", got, "/home/vfstest/notes")
	}
}

func testChdir(t *testing.T, b core.Backend) {
	dir := mustMkdir(t, b, "path-chdir")
	orig, err := b.Cwd()
	if err != nil {
		t.Fatalf("Cwd(): %v", err)
	}
	defer func() {
		if _, err := b.Chdir(orig); err != nil {
			t.Errorf("Chdir(%q): %v", orig, err)
		}
	}()

	got, err := b.Chdir("path-chdir")
	if err != nil {
		t.Fatalf("Chdir(path-chdir): %v", err)
	}
	if got != dir {
		t.Errorf("Chdir(path-chdir): got %q, want %q", got, dir)
	}
	if cwd, _ := b.Cwd(); cwd != dir {
		t.Errorf("Cwd(): got %q, want %q", cwd, dir)
	}

	mustWrite(t, b, "inside.txt", "x")
	if !b.Exists(pathutil.Mash(dir, "inside.txt")) {
		t.Errorf("relative write after Chdir did not land in %s", dir)
	}
}

func testChdirMissing(t *testing.T, b core.Backend) {
	_, err := b.Chdir("path-chdir-missing")
	wantCode(t, "Chdir(path-chdir-missing)", err, errors.CodeNotFound)
}

func testChdirFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "path-chdir-file", "x")

	_, err := b.Chdir("path-chdir-file")
	wantCode(t, "Chdir(path-chdir-file)", err, errors.CodeInvalidPath)
}

package vfstest

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// TestMetadataBackend tests Lstat, Chmod, MkdirMode and MkfileMode.
// Default permissions depend on the process umask for the real backend, so
// only explicitly set modes are checked.
func TestMetadataBackend(t *testing.T, b core.Backend) {
	TestMetadataBackendWithConfig(t, b, Config{})
}

// TestMetadataBackendWithConfig tests metadata operations with configuration.
func TestMetadataBackendWithConfig(t *testing.T, b core.Backend, config Config) {
	runGroup(t, "MetadataBackend", b, config, []subtest{
		{"ChmodFile", testChmodFile},
		{"ChmodDir", testChmodDir},
		{"ChmodMissing", testChmodMissing},
		{"ChmodSurvivesRename", testChmodSurvivesRename},
		{"MkfileMode", testMkfileMode},
		{"MkfileModeKeepsContent", testMkfileModeKeepsContent},
		{"MkdirMode", testMkdirMode},
		{"MkdirModeKeepsExisting", testMkdirModeKeepsExisting},
		{"LstatFile", testLstatFile},
		{"LstatMissing", testLstatMissing},
	})
}

// wantPerm fails the test unless path's permission bits equal want.
func wantPerm(t *testing.T, b core.Backend, path string, want fs.FileMode) {
	t.Helper()
	info, err := b.Stat(path)
	if err != nil {
		t.Fatalf("Stat(%s): %v", path, err)
	}
	if got := info.Mode().Perm(); got != want {
		t.Errorf("Stat(%s).Mode().Perm(): got %o, want %o", path, got, want)
	}
}

func testChmodFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "meta-chmod.txt", "x")

	for _, mode := range []fs.FileMode{0o600, 0o755, 0o444} {
		if err := b.Chmod("meta-chmod.txt", mode); err != nil {
			t.Fatalf("Chmod(meta-chmod.txt, %o): %v", mode, err)
		}
		wantPerm(t, b, "meta-chmod.txt", mode)
	}

	info, err := b.Stat("meta-chmod.txt")
	if err != nil {
		t.Fatalf("Stat(meta-chmod.txt): %v", err)
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Stat(meta-chmod.txt).Mode(): got %v, want a regular file", info.Mode())
	}
}

func testChmodDir(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "meta-chmod-dir")

	if err := b.Chmod("meta-chmod-dir", 0o700); err != nil {
		t.Fatalf("Chmod(meta-chmod-dir, 0700): %v", err)
	}
	wantPerm(t, b, "meta-chmod-dir", 0o700)

	info, err := b.Stat("meta-chmod-dir")
	if err != nil {
		t.Fatalf("Stat(meta-chmod-dir): %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat(meta-chmod-dir).IsDir() after Chmod: got false, want true")
	}
}

func testChmodMissing(t *testing.T, b core.Backend) {
	err := b.Chmod("meta-chmod-missing", 0o644)
	wantCode(t, "Chmod(meta-chmod-missing)", err, errors.CodeNotFound)
}

func testChmodSurvivesRename(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "meta-move/src")
	mustWrite(t, b, "meta-move/src/key.pem", "k")
	if err := b.Chmod("meta-move/src/key.pem", 0o600); err != nil {
		t.Fatalf("Chmod(meta-move/src/key.pem, 0600): %v", err)
	}

	if err := b.Rename("meta-move/src", "meta-move/dst"); err != nil {
		t.Fatalf("Rename(meta-move/src, meta-move/dst): %v", err)
	}
	wantPerm(t, b, "meta-move/dst/key.pem", 0o600)
}

func testMkfileMode(t *testing.T, b core.Backend) {
	want := abs(t, b, "meta-mkfile.txt")

	got, err := b.MkfileMode("meta-mkfile.txt", 0o600)
	if err != nil {
		t.Fatalf("MkfileMode(meta-mkfile.txt, 0600): %v", err)
	}
	if got != want {
		t.Errorf("MkfileMode(meta-mkfile.txt): got %q, want %q", got, want)
	}
	wantPerm(t, b, "meta-mkfile.txt", 0o600)
}

func testMkfileModeKeepsContent(t *testing.T, b core.Backend) {
	mustWrite(t, b, "meta-mkfile-existing.txt", "keep")

	if _, err := b.MkfileMode("meta-mkfile-existing.txt", 0o640); err != nil {
		t.Fatalf("MkfileMode(meta-mkfile-existing.txt, 0640): %v", err)
	}
	wantPerm(t, b, "meta-mkfile-existing.txt", 0o640)

	data, err := b.ReadFile("meta-mkfile-existing.txt")
	if err != nil || string(data) != "keep" {
		t.Errorf("ReadFile(meta-mkfile-existing.txt): got %q, %v, want %q", data, err, "keep")
	}
}

func testMkdirMode(t *testing.T, b core.Backend) {
	want := abs(t, b, "meta-mkdir/a/b")

	got, err := b.MkdirMode("meta-mkdir/a/b", 0o700)
	if err != nil {
		t.Fatalf("MkdirMode(meta-mkdir/a/b, 0700): %v", err)
	}
	if got != want {
		t.Errorf("MkdirMode(meta-mkdir/a/b): got %q, want %q", got, want)
	}
	for _, dir := range []string{"meta-mkdir", "meta-mkdir/a", "meta-mkdir/a/b"} {
		wantPerm(t, b, dir, 0o700)
	}
}

func testMkdirModeKeepsExisting(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "meta-mkdir-existing")
	if err := b.Chmod("meta-mkdir-existing", 0o750); err != nil {
		t.Fatalf("Chmod(meta-mkdir-existing, 0750): %v", err)
	}

	if _, err := b.MkdirMode("meta-mkdir-existing/child", 0o700); err != nil {
		t.Fatalf("MkdirMode(meta-mkdir-existing/child, 0700): %v", err)
	}
	wantPerm(t, b, "meta-mkdir-existing", 0o750)
	wantPerm(t, b, "meta-mkdir-existing/child", 0o700)
}

func testLstatFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "meta-lstat.txt", "12345")

	info, err := b.Lstat("meta-lstat.txt")
	if err != nil {
		t.Fatalf("Lstat(meta-lstat.txt): %v", err)
	}
	if !info.Mode().IsRegular() || info.Size() != 5 {
		t.Errorf("Lstat(meta-lstat.txt): got mode %v size %d, want regular file of 5 bytes", info.Mode(), info.Size())
	}
}

func testLstatMissing(t *testing.T, b core.Backend) {
	_, err := b.Lstat("meta-lstat-missing")
	wantCode(t, "Lstat(meta-lstat-missing)", err, errors.CodeNotFound)
}

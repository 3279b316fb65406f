package vfstest

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// TestWriteBackend tests WriteFile, MkdirAll and Mkfile.
func TestWriteBackend(t *testing.T, b core.Backend) {
	TestWriteBackendWithConfig(t, b, Config{})
}

// TestWriteBackendWithConfig tests write operations with configuration.
func TestWriteBackendWithConfig(t *testing.T, b core.Backend, config Config) {
	runGroup(t, "WriteBackend", b, config, []subtest{
		{"WriteAndRead", testWriteAndRead},
		{"WriteTruncates", testWriteTruncates},
		{"WriteEmpty", testWriteEmpty},
		{"WriteMissingParent", testWriteMissingParent},
		{"WriteOverDirectory", testWriteOverDirectory},
		{"WriteBelowFile", testWriteBelowFile},
		{"WriteLeavesNoTemporaries", testWriteLeavesNoTemporaries},
		{"WritePreservesMode", testWritePreservesMode},
		{"WriteThroughSymlink", testWriteThroughSymlink},
		{"MkdirAllIdempotent", testMkdirAllIdempotent},
		{"MkdirAllOverFile", testMkdirAllOverFile},
		{"Mkfile", testMkfile},
		{"MkfileKeepsContent", testMkfileKeepsContent},
		{"MkfileDirectory", testMkfileDirectory},
	})
}

func testWriteAndRead(t *testing.T, b core.Backend) {
	mustWrite(t, b, "write-roundtrip.txt", "hello world")

	got, err := b.ReadFile("write-roundtrip.txt")
	if err != nil {
		t.Fatalf("ReadFile(write-roundtrip.txt): %v", err)
	}
	if string(got) != "hello world" {
		t.Errorf("ReadFile(write-roundtrip.txt): got %q, want %q", got, "hello world")
	}
}

func testWriteTruncates(t *testing.T, b core.Backend) {
	mustWrite(t, b, "write-truncate.txt", "a much longer first version")
	mustWrite(t, b, "write-truncate.txt", "short")

	got, err := b.ReadFile("write-truncate.txt")
	if err != nil {
		t.Fatalf("ReadFile(write-truncate.txt): %v", err)
	}
	if string(got) != "short" {
		t.Errorf("ReadFile(write-truncate.txt): got %q, want %q", got, "short")
	}
}

func testWriteEmpty(t *testing.T, b core.Backend) {
	if err := b.WriteFile("write-empty.txt", nil); err != nil {
		t.Fatalf("WriteFile(write-empty.txt, nil): %v", err)
	}

	got, err := b.ReadFile("write-empty.txt")
	if err != nil {
		t.Fatalf("ReadFile(write-empty.txt): %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ReadFile(write-empty.txt): got %q, want empty", got)
	}
}

func testWriteMissingParent(t *testing.T, b core.Backend) {
	err := b.WriteFile("write-no-parent/file.txt", []byte("x"))
	wantCode(t, "WriteFile(write-no-parent/file.txt)", err, errors.CodeNotFound)

	if b.Exists("write-no-parent") {
		t.Error("WriteFile created the missing parent directory")
	}
}

func testWriteOverDirectory(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "write-dir")

	err := b.WriteFile("write-dir", []byte("x"))
	wantCode(t, "WriteFile(write-dir)", err, errors.CodeInvalidPath)
}

func testWriteBelowFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "write-file-parent", "x")

	err := b.WriteFile("write-file-parent/child.txt", []byte("y"))
	wantCode(t, "WriteFile(write-file-parent/child.txt)", err, errors.CodeInvalidPath)
}

func testWriteLeavesNoTemporaries(t *testing.T, b core.Backend) {
	dir := mustMkdir(t, b, "write-clean")
	mustWrite(t, b, "write-clean/one.txt", "1")
	mustWrite(t, b, "write-clean/one.txt", "2")

	got, err := b.ReadDir("write-clean")
	if err != nil {
		t.Fatalf("ReadDir(write-clean): %v", err)
	}
	if len(got) != 1 || got[0] != dir+"/one.txt" {
		t.Errorf("ReadDir(write-clean): got %v, want [%s/one.txt]", got, dir)
	}
}

func testWritePreservesMode(t *testing.T, b core.Backend) {
	mustWrite(t, b, "write-secret.txt", "v1")
	if err := b.Chmod("write-secret.txt", 0o600); err != nil {
		t.Fatalf("Chmod(write-secret.txt, 0600): %v", err)
	}

	mustWrite(t, b, "write-secret.txt", "v2")

	info, err := b.Stat("write-secret.txt")
	if err != nil {
		t.Fatalf("Stat(write-secret.txt): %v", err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Errorf("Stat(write-secret.txt).Mode().Perm() after WriteFile: got %o, want 600", got)
	}
}

func testWriteThroughSymlink(t *testing.T, b core.Backend) {
	mustWrite(t, b, "write-link-target.txt", "old")
	if _, err := b.Symlink("write-link.txt", "write-link-target.txt"); err != nil {
		t.Fatalf("Symlink(write-link.txt, write-link-target.txt): %v", err)
	}

	mustWrite(t, b, "write-link.txt", "new")

	got, err := b.ReadFile("write-link-target.txt")
	if err != nil {
		t.Fatalf("ReadFile(write-link-target.txt): %v", err)
	}
	if string(got) != "new" {
		t.Errorf("ReadFile(write-link-target.txt): got %q, want %q", got, "new")
	}

	info, err := b.Lstat("write-link.txt")
	if err != nil {
		t.Fatalf("Lstat(write-link.txt): %v", err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Error("Lstat(write-link.txt): link was replaced by a regular file")
	}
}

func testMkdirAllIdempotent(t *testing.T, b core.Backend) {
	want := abs(t, b, "write-mkdir/a/b")

	for i := 0; i < 2; i++ {
		got, err := b.MkdirAll("write-mkdir/a/b")
		if err != nil {
			t.Fatalf("MkdirAll(write-mkdir/a/b) call %d: %v", i+1, err)
		}
		if got != want {
			t.Errorf("MkdirAll(write-mkdir/a/b): got %q, want %q", got, want)
		}
	}

	info, err := b.Stat("write-mkdir/a/b")
	if err != nil {
		t.Fatalf("Stat(write-mkdir/a/b): %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat(write-mkdir/a/b).IsDir(): got false, want true")
	}
}

func testMkdirAllOverFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "write-mkdir-file", "x")

	_, err := b.MkdirAll("write-mkdir-file")
	wantCode(t, "MkdirAll(write-mkdir-file)", err, errors.CodeInvalidPath)

	_, err = b.MkdirAll("write-mkdir-file/x/y")
	wantCode(t, "MkdirAll(write-mkdir-file/x/y)", err, errors.CodeInvalidPath)

	got, err := b.ReadFile("write-mkdir-file")
	if err != nil || string(got) != "x" {
		t.Errorf("ReadFile(write-mkdir-file): got %q, %v, want %q", got, err, "x")
	}
}

func testMkfile(t *testing.T, b core.Backend) {
	want := abs(t, b, "write-touch.txt")

	got, err := b.Mkfile("write-touch.txt")
	if err != nil {
		t.Fatalf("Mkfile(write-touch.txt): %v", err)
	}
	if got != want {
		t.Errorf("Mkfile(write-touch.txt): got %q, want %q", got, want)
	}

	data, err := b.ReadFile("write-touch.txt")
	if err != nil {
		t.Fatalf("ReadFile(write-touch.txt): %v", err)
	}
	if len(data) != 0 {
		t.Errorf("ReadFile(write-touch.txt): got %q, want empty", data)
	}
}

func testMkfileKeepsContent(t *testing.T, b core.Backend) {
	mustWrite(t, b, "write-touch-existing.txt", "keep")

	if _, err := b.Mkfile("write-touch-existing.txt"); err != nil {
		t.Fatalf("Mkfile(write-touch-existing.txt): %v", err)
	}

	data, err := b.ReadFile("write-touch-existing.txt")
	if err != nil {
		t.Fatalf("ReadFile(write-touch-existing.txt): %v", err)
	}
	if string(data) != "keep" {
		t.Errorf("ReadFile(write-touch-existing.txt): got %q, want %q", data, "keep")
	}
}

func testMkfileDirectory(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "write-touch-dir")

	_, err := b.Mkfile("write-touch-dir")
	wantCode(t, "Mkfile(write-touch-dir)", err, errors.CodeInvalidPath)

	_, err = b.Mkfile("write-touch-missing/file")
	wantCode(t, "Mkfile(write-touch-missing/file)", err, errors.CodeNotFound)
}

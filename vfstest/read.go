package vfstest

import (
	"io/fs"
	"slices"
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// TestReadBackend tests Exists, Stat, ReadFile and ReadDir.
func TestReadBackend(t *testing.T, b core.Backend) {
	TestReadBackendWithConfig(t, b, Config{})
}

// TestReadBackendWithConfig tests read operations with configuration.
func TestReadBackendWithConfig(t *testing.T, b core.Backend, config Config) {
	runGroup(t, "ReadBackend", b, config, []subtest{
		{"ExistsMissing", testExistsMissing},
		{"ExistsFileAndDir", testExistsFileAndDir},
		{"StatMissing", testStatMissing},
		{"StatFile", testStatFile},
		{"ReadFileMissing", testReadFileMissing},
		{"ReadFileDirectory", testReadFileDirectory},
		{"ReadDirSorted", testReadDirSorted},
		{"ReadDirFile", testReadDirFile},
		{"ReadDirMissing", testReadDirMissing},
	})
}

func testExistsMissing(t *testing.T, b core.Backend) {
	if b.Exists("read-exists-missing") {
		t.Error("Exists(read-exists-missing): got true, want false")
	}
	if b.Exists("") {
		t.Error(`Exists(""): got true, want false`)
	}
}

func testExistsFileAndDir(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "read-exists")
	mustWrite(t, b, "read-exists/file.txt", "x")

	for _, p := range []string{"read-exists", "read-exists/file.txt"} {
		if !b.Exists(p) {
			t.Errorf("Exists(%q): got false, want true", p)
		}
	}
	if b.Exists("read-exists/file.txt/below") {
		t.Error("Exists(read-exists/file.txt/below): got true, want false")
	}
}

func testStatMissing(t *testing.T, b core.Backend) {
	_, err := b.Stat("read-stat-missing")
	wantCode(t, "Stat(read-stat-missing)", err, errors.CodeNotFound)
}

func testStatFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "read-stat.txt", "hello")

	info, err := b.Stat("read-stat.txt")
	if err != nil {
		t.Fatalf("Stat(read-stat.txt): %v", err)
	}
	if info.IsDir() {
		t.Error("Stat(read-stat.txt).IsDir(): got true, want false")
	}
	if info.Size() != 5 {
		t.Errorf("Stat(read-stat.txt).Size(): got %d, want 5", info.Size())
	}
	if info.Name() != "read-stat.txt" {
		t.Errorf("Stat(read-stat.txt).Name(): got %q, want %q", info.Name(), "read-stat.txt")
	}
}

func testReadFileMissing(t *testing.T, b core.Backend) {
	_, err := b.ReadFile("read-missing.txt")
	wantCode(t, "ReadFile(read-missing.txt)", err, errors.CodeNotFound)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(read-missing.txt): error %v does not match fs.ErrNotExist", err)
	}
}

func testReadFileDirectory(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "read-dir-as-file")

	_, err := b.ReadFile("read-dir-as-file")
	wantCode(t, "ReadFile(read-dir-as-file)", err, errors.CodeInvalidPath)
}

func testReadDirSorted(t *testing.T, b core.Backend) {
	dir := mustMkdir(t, b, "read-list")
	mustWrite(t, b, "read-list/b.txt", "b")
	mustWrite(t, b, "read-list/a.txt", "a")
	mustMkdir(t, b, "read-list/c")
	mustWrite(t, b, "read-list/c/nested.txt", "n")

	got, err := b.ReadDir("read-list")
	if err != nil {
		t.Fatalf("ReadDir(read-list): %v", err)
	}

	want := []string{dir + "/a.txt", dir + "/b.txt", dir + "/c"}
	if !slices.Equal(got, want) {
		t.Errorf("ReadDir(read-list): got %v, want %v", got, want)
	}
}

func testReadDirFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "read-list-file.txt", "x")

	_, err := b.ReadDir("read-list-file.txt")
	wantCode(t, "ReadDir(read-list-file.txt)", err, errors.CodeInvalidPath)
}

func testReadDirMissing(t *testing.T, b core.Backend) {
	_, err := b.ReadDir("read-list-missing")
	wantCode(t, "ReadDir(read-list-missing)", err, errors.CodeNotFound)
}

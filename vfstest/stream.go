package vfstest

import (
	"io"
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// TestStreamBackend tests Create, Append and Open.
func TestStreamBackend(t *testing.T, b core.Backend) {
	TestStreamBackendWithConfig(t, b, Config{})
}

// TestStreamBackendWithConfig tests stream operations with configuration.
func TestStreamBackendWithConfig(t *testing.T, b core.Backend, config Config) {
	runGroup(t, "StreamBackend", b, config, []subtest{
		{"CreateWrite", testCreateWrite},
		{"CreateTruncates", testCreateTruncates},
		{"CreateMissingParent", testCreateMissingParent},
		{"AppendExtends", testAppendExtends},
		{"AppendCreates", testAppendCreates},
		{"OpenReadSeek", testOpenReadSeek},
		{"OpenStat", testOpenStat},
		{"OpenMissing", testOpenMissing},
		{"OpenDirectory", testOpenDirectory},
	})
}

// writeHandle writes content through f and closes it, failing the test on error.
func writeHandle(t *testing.T, f core.File, content string) {
	t.Helper()
	if _, err := io.WriteString(f, content); err != nil {
		t.Fatalf("Write(%s): %v", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close(%s): %v", f.Name(), err)
	}
}

// wantContent fails the test unless the file at path holds want.
func wantContent(t *testing.T, b core.Backend, path, want string) {
	t.Helper()
	got, err := b.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	if string(got) != want {
		t.Errorf("ReadFile(%s): got %q, want %q", path, got, want)
	}
}

func testCreateWrite(t *testing.T, b core.Backend) {
	f, err := b.Create("stream-create.txt")
	if err != nil {
		t.Fatalf("Create(stream-create.txt): %v", err)
	}
	if want := abs(t, b, "stream-create.txt"); f.Name() != want {
		t.Errorf("Create(stream-create.txt).Name(): got %q, want %q", f.Name(), want)
	}
	writeHandle(t, f, "foobar")

	wantContent(t, b, "stream-create.txt", "foobar")
}

func testCreateTruncates(t *testing.T, b core.Backend) {
	mustWrite(t, b, "stream-truncate.txt", "a much longer original")

	f, err := b.Create("stream-truncate.txt")
	if err != nil {
		t.Fatalf("Create(stream-truncate.txt): %v", err)
	}
	writeHandle(t, f, "short")

	wantContent(t, b, "stream-truncate.txt", "short")
}

func testCreateMissingParent(t *testing.T, b core.Backend) {
	_, err := b.Create("stream-no-parent/file.txt")
	wantCode(t, "Create(stream-no-parent/file.txt)", err, errors.CodeNotFound)

	if b.Exists("stream-no-parent") {
		t.Error("Create created the missing parent directory")
	}
}

func testAppendExtends(t *testing.T, b core.Backend) {
	mustWrite(t, b, "stream-append.txt", "foobar")

	f, err := b.Append("stream-append.txt")
	if err != nil {
		t.Fatalf("Append(stream-append.txt): %v", err)
	}
	writeHandle(t, f, "123")

	wantContent(t, b, "stream-append.txt", "foobar123")
}

func testAppendCreates(t *testing.T, b core.Backend) {
	f, err := b.Append("stream-append-new.txt")
	if err != nil {
		t.Fatalf("Append(stream-append-new.txt): %v", err)
	}
	writeHandle(t, f, "first")

	wantContent(t, b, "stream-append-new.txt", "first")
}

func testOpenReadSeek(t *testing.T, b core.Backend) {
	mustWrite(t, b, "stream-open.txt", "foobar 1")

	f, err := b.Open("stream-open.txt")
	if err != nil {
		t.Fatalf("Open(stream-open.txt): %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll(stream-open.txt): %v", err)
	}
	if string(data) != "foobar 1" {
		t.Errorf("ReadAll(stream-open.txt): got %q, want %q", data, "foobar 1")
	}

	if _, err := f.Seek(3, io.SeekStart); err != nil {
		t.Fatalf("Seek(3): %v", err)
	}
	rest, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll after Seek: %v", err)
	}
	if string(rest) != "bar 1" {
		t.Errorf("ReadAll after Seek(3): got %q, want %q", rest, "bar 1")
	}
}

func testOpenStat(t *testing.T, b core.Backend) {
	mustWrite(t, b, "stream-stat.txt", "1234")

	f, err := b.Open("stream-stat.txt")
	if err != nil {
		t.Fatalf("Open(stream-stat.txt): %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat() on handle: %v", err)
	}
	if info.Size() != 4 || info.IsDir() {
		t.Errorf("Stat() on handle: got size %d dir %v, want size 4 file", info.Size(), info.IsDir())
	}
}

func testOpenMissing(t *testing.T, b core.Backend) {
	_, err := b.Open("stream-open-missing.txt")
	wantCode(t, "Open(stream-open-missing.txt)", err, errors.CodeNotFound)
}

func testOpenDirectory(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "stream-open-dir")

	_, err := b.Open("stream-open-dir")
	wantCode(t, "Open(stream-open-dir)", err, errors.CodeInvalidPath)
}

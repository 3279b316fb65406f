package vfstest

import (
	"io/fs"
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// TestSymlinkBackend tests Symlink and Readlink and how the other
// operations treat links.
func TestSymlinkBackend(t *testing.T, b core.Backend) {
	TestSymlinkBackendWithConfig(t, b, Config{})
}

// TestSymlinkBackendWithConfig tests symlink operations with configuration.
func TestSymlinkBackendWithConfig(t *testing.T, b core.Backend, config Config) {
	runGroup(t, "SymlinkBackend", b, config, []subtest{
		{"SymlinkCreate", testSymlinkCreate},
		{"SymlinkStoresRelativeTarget", testSymlinkRelativeTarget},
		{"SymlinkToDirectory", testSymlinkToDirectory},
		{"SymlinkBroken", testSymlinkBroken},
		{"SymlinkTaken", testSymlinkTaken},
		{"ReadlinkNotALink", testReadlinkNotALink},
		{"RemoveLinkKeepsTarget", testRemoveLinkKeepsTarget},
		{"RemoveAllLinkKeepsTarget", testRemoveAllLinkKeepsTarget},
		{"RenameMovesLink", testRenameMovesLink},
		{"ChmodFollowsLink", testChmodFollowsLink},
	})
}

// mustSymlink creates link pointing to target on b or fails the test.
func mustSymlink(t *testing.T, b core.Backend, link, target string) string {
	t.Helper()
	p, err := b.Symlink(link, target)
	if err != nil {
		t.Fatalf("Symlink(%q, %q): %v", link, target, err)
	}
	return p
}

// wantLink fails the test unless path is a symbolic link storing target.
func wantLink(t *testing.T, b core.Backend, path, target string) {
	t.Helper()
	info, err := b.Lstat(path)
	if err != nil {
		t.Fatalf("Lstat(%s): %v", path, err)
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		t.Fatalf("Lstat(%s).Mode(): got %v, want a symbolic link", path, info.Mode())
	}
	got, err := b.Readlink(path)
	if err != nil {
		t.Fatalf("Readlink(%s): %v", path, err)
	}
	if got != target {
		t.Errorf("Readlink(%s): got %q, want %q", path, got, target)
	}
}

func testSymlinkCreate(t *testing.T, b core.Backend) {
	mustWrite(t, b, "sym-target.txt", "target content")
	want := abs(t, b, "sym-link.txt")

	got := mustSymlink(t, b, "sym-link.txt", "sym-target.txt")
	if got != want {
		t.Errorf("Symlink(sym-link.txt): got %q, want %q", got, want)
	}
	wantLink(t, b, "sym-link.txt", "sym-target.txt")

	data, err := b.ReadFile("sym-link.txt")
	if err != nil {
		t.Fatalf("ReadFile(sym-link.txt) through link: %v", err)
	}
	if string(data) != "target content" {
		t.Errorf("ReadFile(sym-link.txt): got %q, want %q", data, "target content")
	}
}

func testSymlinkRelativeTarget(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "sym-rel/links")
	mustWrite(t, b, "sym-rel/file.txt", "x")

	mustSymlink(t, b, "sym-rel/links/link", abs(t, b, "sym-rel/file.txt"))
	wantLink(t, b, "sym-rel/links/link", "../file.txt")
}

func testSymlinkToDirectory(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "sym-dir-target")
	mustWrite(t, b, "sym-dir-target/inner.txt", "x")
	mustSymlink(t, b, "sym-dir-link", "sym-dir-target")

	info, err := b.Stat("sym-dir-link")
	if err != nil {
		t.Fatalf("Stat(sym-dir-link): %v", err)
	}
	if !info.IsDir() {
		t.Error("Stat(sym-dir-link).IsDir(): got false, want true")
	}

	data, err := b.ReadFile("sym-dir-link/inner.txt")
	if err != nil || string(data) != "x" {
		t.Errorf("ReadFile(sym-dir-link/inner.txt): got %q, %v, want %q", data, err, "x")
	}
}

func testSymlinkBroken(t *testing.T, b core.Backend) {
	mustSymlink(t, b, "sym-broken", "sym-nowhere")

	if b.Exists("sym-broken") {
		t.Error("Exists(sym-broken): got true for a dangling link, want false")
	}
	wantLink(t, b, "sym-broken", "sym-nowhere")

	_, err := b.ReadFile("sym-broken")
	wantCode(t, "ReadFile(sym-broken)", err, errors.CodeNotFound)
}

func testSymlinkTaken(t *testing.T, b core.Backend) {
	mustWrite(t, b, "sym-taken", "x")

	_, err := b.Symlink("sym-taken", "anything")
	wantCode(t, "Symlink(sym-taken)", err, errors.CodeAlreadyExists)

	_, err = b.Symlink("sym-no-parent/link", "anything")
	wantCode(t, "Symlink(sym-no-parent/link)", err, errors.CodeNotFound)
}

func testReadlinkNotALink(t *testing.T, b core.Backend) {
	mustWrite(t, b, "sym-plain.txt", "x")

	_, err := b.Readlink("sym-plain.txt")
	wantCode(t, "Readlink(sym-plain.txt)", err, errors.CodeInvalidPath)

	_, err = b.Readlink("sym-readlink-missing")
	wantCode(t, "Readlink(sym-readlink-missing)", err, errors.CodeNotFound)
}

func testRemoveLinkKeepsTarget(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "sym-rm-target")
	mustWrite(t, b, "sym-rm-target/keep.txt", "x")
	mustSymlink(t, b, "sym-rm-link", "sym-rm-target")

	if err := b.Remove("sym-rm-link"); err != nil {
		t.Fatalf("Remove(sym-rm-link): %v", err)
	}
	if _, err := b.Lstat("sym-rm-link"); !errors.HasCode(err, errors.CodeNotFound) {
		t.Errorf("Lstat(sym-rm-link) after Remove: got %v, want %s", err, errors.CodeNotFound)
	}
	if !b.Exists("sym-rm-target/keep.txt") {
		t.Error("Remove of a link removed its target's content")
	}
}

func testRemoveAllLinkKeepsTarget(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "sym-rmall-target")
	mustWrite(t, b, "sym-rmall-target/keep.txt", "x")
	mustSymlink(t, b, "sym-rmall-link", "sym-rmall-target")

	if err := b.RemoveAll("sym-rmall-link"); err != nil {
		t.Fatalf("RemoveAll(sym-rmall-link): %v", err)
	}
	if !b.Exists("sym-rmall-target/keep.txt") {
		t.Error("RemoveAll of a link removed its target's content")
	}
}

func testRenameMovesLink(t *testing.T, b core.Backend) {
	mustWrite(t, b, "sym-mv-target.txt", "x")
	mustSymlink(t, b, "sym-mv-link", "sym-mv-target.txt")

	if err := b.Rename("sym-mv-link", "sym-mv-moved"); err != nil {
		t.Fatalf("Rename(sym-mv-link, sym-mv-moved): %v", err)
	}
	wantLink(t, b, "sym-mv-moved", "sym-mv-target.txt")

	if _, err := b.Lstat("sym-mv-link"); !errors.HasCode(err, errors.CodeNotFound) {
		t.Errorf("Lstat(sym-mv-link) after Rename: got %v, want %s", err, errors.CodeNotFound)
	}
	data, err := b.ReadFile("sym-mv-target.txt")
	if err != nil || string(data) != "x" {
		t.Errorf("ReadFile(sym-mv-target.txt): got %q, %v, want %q", data, err, "x")
	}
}

func testChmodFollowsLink(t *testing.T, b core.Backend) {
	mustWrite(t, b, "sym-chmod-target.txt", "x")
	mustSymlink(t, b, "sym-chmod-link", "sym-chmod-target.txt")

	if err := b.Chmod("sym-chmod-link", 0o600); err != nil {
		t.Fatalf("Chmod(sym-chmod-link, 0600): %v", err)
	}
	wantPerm(t, b, "sym-chmod-target.txt", 0o600)
	wantLink(t, b, "sym-chmod-link", "sym-chmod-target.txt")
}

package vfstest

import (
	"slices"
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// TestManageBackend tests Remove, RemoveAll and Rename.
func TestManageBackend(t *testing.T, b core.Backend) {
	TestManageBackendWithConfig(t, b, Config{})
}

// TestManageBackendWithConfig tests management operations with configuration.
func TestManageBackendWithConfig(t *testing.T, b core.Backend, config Config) {
	runGroup(t, "ManageBackend", b, config, []subtest{
		{"RemoveFile", testRemoveFile},
		{"RemoveMissing", testRemoveMissing},
		{"RemoveEmptyDir", testRemoveEmptyDir},
		{"RemoveNonEmptyDir", testRemoveNonEmptyDir},
		{"RemoveRoot", testRemoveRoot},
		{"RemoveAllTree", testRemoveAllTree},
		{"RemoveAllMissing", testRemoveAllMissing},
		{"RemoveAllRoot", testRemoveAllRoot},
		{"RenameFile", testRenameFile},
		{"RenameReplacesFile", testRenameReplacesFile},
		{"RenameDir", testRenameDir},
		{"RenameMissing", testRenameMissing},
		{"RenameIntoItself", testRenameIntoItself},
		{"RenameOntoDirectory", testRenameOntoDirectory},
	})
}

func testRemoveFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "manage-remove.txt", "x")

	if err := b.Remove("manage-remove.txt"); err != nil {
		t.Fatalf("Remove(manage-remove.txt): %v", err)
	}
	if b.Exists("manage-remove.txt") {
		t.Error("Exists(manage-remove.txt) after Remove: got true, want false")
	}
}

func testRemoveMissing(t *testing.T, b core.Backend) {
	err := b.Remove("manage-remove-missing")
	wantCode(t, "Remove(manage-remove-missing)", err, errors.CodeNotFound)
}

func testRemoveEmptyDir(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "manage-remove-empty")

	if err := b.Remove("manage-remove-empty"); err != nil {
		t.Fatalf("Remove(manage-remove-empty): %v", err)
	}
	if b.Exists("manage-remove-empty") {
		t.Error("Exists(manage-remove-empty) after Remove: got true, want false")
	}
}

func testRemoveNonEmptyDir(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "manage-remove-full")
	mustWrite(t, b, "manage-remove-full/file.txt", "x")

	err := b.Remove("manage-remove-full")
	wantCode(t, "Remove(manage-remove-full)", err, errors.CodeConflict)

	if !b.Exists("manage-remove-full/file.txt") {
		t.Error("Remove of a non-empty directory deleted its content")
	}
}

func testRemoveRoot(t *testing.T, b core.Backend) {
	err := b.Remove("/")
	wantCode(t, "Remove(/)", err, errors.CodeInvalidPath)
}

func testRemoveAllTree(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "manage-tree/a/b")
	mustWrite(t, b, "manage-tree/a/b/deep.txt", "x")
	mustWrite(t, b, "manage-tree/top.txt", "y")

	if err := b.RemoveAll("manage-tree"); err != nil {
		t.Fatalf("RemoveAll(manage-tree): %v", err)
	}
	if b.Exists("manage-tree") {
		t.Error("Exists(manage-tree) after RemoveAll: got true, want false")
	}
}

func testRemoveAllMissing(t *testing.T, b core.Backend) {
	if err := b.RemoveAll("manage-tree-missing"); err != nil {
		t.Errorf("RemoveAll(manage-tree-missing): got %v, want nil", err)
	}
}

func testRemoveAllRoot(t *testing.T, b core.Backend) {
	err := b.RemoveAll("/")
	wantCode(t, "RemoveAll(/)", err, errors.CodeInvalidPath)
}

func testRenameFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "manage-old.txt", "content")

	if err := b.Rename("manage-old.txt", "manage-new.txt"); err != nil {
		t.Fatalf("Rename(manage-old.txt, manage-new.txt): %v", err)
	}
	if b.Exists("manage-old.txt") {
		t.Error("Exists(manage-old.txt) after Rename: got true, want false")
	}

	got, err := b.ReadFile("manage-new.txt")
	if err != nil {
		t.Fatalf("ReadFile(manage-new.txt): %v", err)
	}
	if string(got) != "content" {
		t.Errorf("ReadFile(manage-new.txt): got %q, want %q", got, "content")
	}
}

func testRenameReplacesFile(t *testing.T, b core.Backend) {
	mustWrite(t, b, "manage-src.txt", "new")
	mustWrite(t, b, "manage-dst.txt", "old")

	if err := b.Rename("manage-src.txt", "manage-dst.txt"); err != nil {
		t.Fatalf("Rename(manage-src.txt, manage-dst.txt): %v", err)
	}

	got, err := b.ReadFile("manage-dst.txt")
	if err != nil {
		t.Fatalf("ReadFile(manage-dst.txt): %v", err)
	}
	if string(got) != "new" {
		t.Errorf("ReadFile(manage-dst.txt): got %q, want %q", got, "new")
	}
}

func testRenameDir(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "manage-mv/a/sub")
	mustWrite(t, b, "manage-mv/a/sub/file.txt", "x")
	mustMkdir(t, b, "manage-mv/ab")
	mustWrite(t, b, "manage-mv/ab/keep.txt", "y")

	if err := b.Rename("manage-mv/a", "manage-mv/c"); err != nil {
		t.Fatalf("Rename(manage-mv/a, manage-mv/c): %v", err)
	}

	got, err := b.ReadFile("manage-mv/c/sub/file.txt")
	if err != nil || string(got) != "x" {
		t.Errorf("ReadFile(manage-mv/c/sub/file.txt): got %q, %v, want %q", got, err, "x")
	}

	dir := abs(t, b, "manage-mv")
	list, err := b.ReadDir("manage-mv")
	if err != nil {
		t.Fatalf("ReadDir(manage-mv): %v", err)
	}
	want := []string{dir + "/ab", dir + "/c"}
	if !slices.Equal(list, want) {
		t.Errorf("ReadDir(manage-mv): got %v, want %v", list, want)
	}
	if !b.Exists("manage-mv/ab/keep.txt") {
		t.Error("Rename of a directory disturbed a sibling sharing its prefix")
	}
}

func testRenameMissing(t *testing.T, b core.Backend) {
	err := b.Rename("manage-nothing", "manage-something")
	wantCode(t, "Rename(manage-nothing, manage-something)", err, errors.CodeNotFound)
}

func testRenameIntoItself(t *testing.T, b core.Backend) {
	mustMkdir(t, b, "manage-self")

	err := b.Rename("manage-self", "manage-self/inner")
	wantCode(t, "Rename(manage-self, manage-self/inner)", err, errors.CodeInvalidPath)
}

func testRenameOntoDirectory(t *testing.T, b core.Backend) {
	mustWrite(t, b, "manage-onto.txt", "x")
	mustMkdir(t, b, "manage-onto-dir")

	err := b.Rename("manage-onto.txt", "manage-onto-dir")
	wantCode(t, "Rename(manage-onto.txt, manage-onto-dir)", err, errors.CodeInvalidPath)
}

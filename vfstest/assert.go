package vfstest

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs"
	"github.com/jmgilman/go/vfs/errors"
)

// AssertExists fails the test unless path exists on the active backend.
func AssertExists(t testing.TB, path string) {
	t.Helper()
	require.Truef(t, vfs.Exists(path), "expected %s to exist", path)
}

// AssertNoExists fails the test if path exists on the active backend.
func AssertNoExists(t testing.TB, path string) {
	t.Helper()
	require.Falsef(t, vfs.Exists(path), "expected %s not to exist", path)
}

// AssertIsDir fails the test unless path is a directory.
func AssertIsDir(t testing.TB, path string) {
	t.Helper()
	require.Truef(t, vfs.IsDir(path), "expected %s to be a directory", path)
}

// AssertNoDir fails the test if path is a directory.
func AssertNoDir(t testing.TB, path string) {
	t.Helper()
	require.Falsef(t, vfs.IsDir(path), "expected %s not to be a directory", path)
}

// AssertIsFile fails the test unless path is a regular file.
func AssertIsFile(t testing.TB, path string) {
	t.Helper()
	require.Truef(t, vfs.IsFile(path), "expected %s to be a file", path)
}

// AssertNoFile fails the test if path is a regular file.
func AssertNoFile(t testing.TB, path string) {
	t.Helper()
	require.Falsef(t, vfs.IsFile(path), "expected %s not to be a file", path)
}

// AssertMkdirP creates path and its parents and returns the absolute path.
func AssertMkdirP(t testing.TB, path string) string {
	t.Helper()
	dir, err := vfs.MkdirP(path)
	require.NoError(t, err)
	AssertIsDir(t, dir)
	return dir
}

// AssertMkfile touches path and returns the absolute path.
func AssertMkfile(t testing.TB, path string) string {
	t.Helper()
	file, err := vfs.Mkfile(path)
	require.NoError(t, err)
	AssertIsFile(t, file)
	return file
}

// AssertWriteAll writes data to path and checks it reads back unchanged.
func AssertWriteAll(t testing.TB, path, data string) {
	t.Helper()
	require.NoError(t, vfs.WriteString(path, data))
	AssertReadAll(t, path, data)
}

// AssertReadAll fails the test unless path holds exactly want.
func AssertReadAll(t testing.TB, path, want string) {
	t.Helper()
	got, err := vfs.ReadString(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// AssertCopyFile copies from to to and checks the content matches.
func AssertCopyFile(t testing.TB, from, to string) {
	t.Helper()
	want, err := vfs.ReadString(from)
	require.NoError(t, err)
	require.NoError(t, vfs.Copy(from, to))
	AssertReadAll(t, to, want)
}

// AssertRemove removes the file or empty directory at path.
func AssertRemove(t testing.TB, path string) {
	t.Helper()
	require.NoError(t, vfs.Remove(path))
	AssertNoExists(t, path)
}

// AssertRemoveAll removes path recursively.
func AssertRemoveAll(t testing.TB, path string) {
	t.Helper()
	require.NoError(t, vfs.RemoveAll(path))
	AssertNoExists(t, path)
}

// AssertSymlink creates a link at link pointing to target, checks it is a
// link and returns its absolute path.
func AssertSymlink(t testing.TB, link, target string) string {
	t.Helper()
	p, err := vfs.Symlink(link, target)
	require.NoError(t, err)
	require.Truef(t, vfs.IsSymlink(p), "expected %s to be a symbolic link", p)
	return p
}

// AssertReadlink fails the test unless the link at path stores want.
func AssertReadlink(t testing.TB, path, want string) {
	t.Helper()
	got, err := vfs.Readlink(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// AssertReadlinkAbs fails the test unless the link at path points to want.
func AssertReadlinkAbs(t testing.TB, path, want string) {
	t.Helper()
	got, err := vfs.ReadlinkAbs(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// AssertMode fails the test unless path's permission bits equal want.
func AssertMode(t testing.TB, path string, want fs.FileMode) {
	t.Helper()
	got, err := vfs.Mode(path)
	require.NoError(t, err)
	require.Equalf(t, want.Perm(), got.Perm(), "mode of %s: got %o, want %o", path, got.Perm(), want.Perm())
}

// AssertCode fails the test unless err carries code.
func AssertCode(t testing.TB, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	require.Equalf(t, code, errors.GetCode(err), "unexpected error: %v", err)
}

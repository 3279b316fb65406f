package vfs

import (
	"io/fs"

	"github.com/samber/mo"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/pathutil"
)

// Abs returns path in clean absolute form: "~" and environment variables are
// expanded and relative paths are resolved against the working directory.
// Nothing is read from storage, so the path need not exist.
func Abs(path string) (string, error) {
	return Current().Abs(path)
}

// Cwd returns the active backend's working directory.
func Cwd() (string, error) {
	return Current().Cwd()
}

// Chdir changes the active backend's working directory.
func Chdir(path string) (string, error) {
	return Current().Chdir(path)
}

// ConfigDir returns the per-user configuration directory for app, or None
// when neither XDG_CONFIG_HOME nor HOME is set. It never creates anything.
func ConfigDir(app string) mo.Option[string] {
	return pathutil.ConfigDir(app)
}

// Exists reports whether anything is present at path.
func Exists(path string) bool {
	return Current().Exists(path)
}

// IsDir reports whether path is an existing directory. A symbolic link is
// not a directory, even if it points to one.
func IsDir(path string) bool {
	info, err := Current().Lstat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path is an existing regular file. A symbolic link is
// not a file, even if it points to one.
func IsFile(path string) bool {
	info, err := Current().Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsSymlink reports whether path is a symbolic link, dangling or not.
func IsSymlink(path string) bool {
	return isSymlink(Current(), path)
}

// IsSymlinkDir reports whether path is a symbolic link to a directory.
func IsSymlinkDir(path string) bool {
	b := Current()
	if !isSymlink(b, path) {
		return false
	}
	info, err := b.Stat(path)
	return err == nil && info.IsDir()
}

// IsSymlinkFile reports whether path is a symbolic link to a regular file.
func IsSymlinkFile(path string) bool {
	b := Current()
	if !isSymlink(b, path) {
		return false
	}
	info, err := b.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsExec reports whether path exists and any execute bit is set.
func IsExec(path string) bool {
	mode, err := Mode(path)
	return err == nil && mode.Perm()&0o111 != 0
}

// IsReadonly reports whether path exists and no write bit is set.
func IsReadonly(path string) bool {
	mode, err := Mode(path)
	return err == nil && mode.Perm()&0o222 == 0
}

// Stat returns metadata for path, following symbolic links.
func Stat(path string) (fs.FileInfo, error) {
	return Current().Stat(path)
}

// Lstat returns metadata for path without following a symbolic link at path.
func Lstat(path string) (fs.FileInfo, error) {
	return Current().Lstat(path)
}

// Mode returns the type and permission bits of path, following symbolic
// links.
func Mode(path string) (fs.FileMode, error) {
	info, err := Current().Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Mode(), nil
}

// Chmod sets the permission bits of path, following symbolic links.
func Chmod(path string, mode fs.FileMode) error {
	return Current().Chmod(path, mode)
}

// MkdirP creates path and any missing parents and returns the absolute path.
// It succeeds if the directory already exists.
func MkdirP(path string) (string, error) {
	return Current().MkdirAll(path)
}

// MkdirM is MkdirP that gives every directory it creates the permission
// bits of mode.
func MkdirM(path string, mode fs.FileMode) (string, error) {
	return Current().MkdirMode(path, mode)
}

// Mkfile creates an empty file if nothing exists at path and returns the
// absolute path. Existing content is kept.
func Mkfile(path string) (string, error) {
	return Current().Mkfile(path)
}

// MkfileM is Mkfile that then sets the permission bits of mode exactly.
func MkfileM(path string, mode fs.FileMode) (string, error) {
	return Current().MkfileMode(path, mode)
}

// Create opens path for writing, creating or truncating it.
// The caller must close the file.
func Create(path string) (core.File, error) {
	return Current().Create(path)
}

// Append opens path for writing at its end, creating it if missing.
// The caller must close the file.
func Append(path string) (core.File, error) {
	return Current().Append(path)
}

// Open opens the file at path for reading. The caller must close the file.
func Open(path string) (core.File, error) {
	return Current().Open(path)
}

// Symlink creates a symbolic link at link pointing to target and returns the
// link's absolute path. The stored target is relative to the link.
func Symlink(link, target string) (string, error) {
	return Current().Symlink(link, target)
}

// Readlink returns the target stored in the link at path.
func Readlink(path string) (string, error) {
	return Current().Readlink(path)
}

// ReadlinkAbs returns the absolute path the link at path points to.
func ReadlinkAbs(path string) (string, error) {
	b := Current()
	abs, err := b.Abs(path)
	if err != nil {
		return "", err
	}
	return linkTarget(b, abs)
}

// ReadAll returns the contents of the file at path.
func ReadAll(path string) ([]byte, error) {
	return Current().ReadFile(path)
}

// ReadString returns the contents of the file at path as a string.
func ReadString(path string) (string, error) {
	data, err := Current().ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteAll creates or truncates the file at path and writes data.
// The parent directory must already exist.
func WriteAll(path string, data []byte) error {
	return Current().WriteFile(path, data)
}

// WriteString is WriteAll for string content.
func WriteString(path, s string) error {
	return Current().WriteFile(path, []byte(s))
}

// Remove deletes a file or an empty directory.
func Remove(path string) error {
	return Current().Remove(path)
}

// RemoveAll deletes path and everything below it. A missing path is not an
// error.
func RemoveAll(path string) error {
	return Current().RemoveAll(path)
}

// Rename moves src to dst.
func Rename(src, dst string) error {
	return Current().Rename(src, dst)
}

// Paths returns the sorted absolute paths of the direct children of path.
func Paths(path string) ([]string, error) {
	return Current().ReadDir(path)
}

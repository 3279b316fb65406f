package core

import (
	"io"
	"io/fs"
)

// Backend is the full contract of a virtual filesystem backend.
//
// Implementations must be safe for concurrent use. An operation that has
// already obtained a Backend keeps using it even if the global facade is
// switched to another backend in the meantime.
type Backend interface {
	ReadBackend
	WriteBackend
	ManageBackend
	PathBackend
	MetadataBackend
	SymlinkBackend
	StreamBackend

	// Kind reports which variant this backend is.
	Kind() Kind
}

// ReadBackend defines read-only operations.
type ReadBackend interface {
	// Exists reports whether anything is present at path.
	// It never fails; an unresolvable path is reported as absent.
	Exists(path string) bool

	// Stat returns metadata for path.
	// Returns CodeNotFound if nothing is present.
	Stat(path string) (fs.FileInfo, error)

	// ReadFile returns the full contents of the file at path.
	// Returns CodeNotFound if absent and CodeInvalidPath if path is a directory.
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the absolute paths of the direct children of path,
	// sorted lexically.
	ReadDir(path string) ([]string, error)
}

// WriteBackend defines operations that create or replace content.
type WriteBackend interface {
	// WriteFile creates or truncates the file at path and writes data.
	// The parent directory must exist (CodeNotFound otherwise). Writing over
	// a directory, or below a file, returns CodeInvalidPath.
	WriteFile(path string, data []byte) error

	// MkdirAll creates path and any missing ancestors, returning the
	// absolute path. Calling it on an existing directory succeeds. If path
	// or any ancestor is a file, CodeInvalidPath is returned and nothing is
	// created.
	MkdirAll(path string) (string, error)

	// Mkfile creates an empty file at path if nothing is there and returns
	// the absolute path. An existing file keeps its content.
	Mkfile(path string) (string, error)
}

// ManageBackend defines operations that remove or move entries.
type ManageBackend interface {
	// Remove deletes a file or an empty directory.
	// Returns CodeNotFound if absent and CodeConflict for a non-empty directory.
	Remove(path string) error

	// RemoveAll deletes path and everything below it.
	// A missing path is not an error. The root directory cannot be removed.
	RemoveAll(path string) error

	// Rename moves src to dst, replacing a file at dst.
	Rename(src, dst string) error
}

// PathBackend defines path resolution against the backend's working directory.
type PathBackend interface {
	// Abs expands "~" and environment variables in path, then makes it
	// absolute against the working directory. It does not touch storage.
	Abs(path string) (string, error)

	// Cwd returns the working directory.
	Cwd() (string, error)

	// Chdir changes the working directory to path, which must be an
	// existing directory, and returns the new absolute working directory.
	Chdir(path string) (string, error)
}

// MetadataBackend defines permission and link-aware metadata operations.
type MetadataBackend interface {
	// Lstat returns metadata for path without following a symbolic link at
	// the final component.
	Lstat(path string) (fs.FileInfo, error)

	// Chmod sets the permission bits of path, following symbolic links.
	// Only mode.Perm() is used.
	Chmod(path string, mode fs.FileMode) error

	// MkdirMode is MkdirAll that gives every directory it creates the
	// permission bits of mode. Existing directories keep theirs.
	MkdirMode(path string, mode fs.FileMode) (string, error)

	// MkfileMode is Mkfile followed by setting the permission bits of mode,
	// which are applied exactly, regardless of the process umask.
	MkfileMode(path string, mode fs.FileMode) (string, error)
}

// SymlinkBackend defines symbolic link operations.
type SymlinkBackend interface {
	// Symlink creates a link at link pointing to target and returns the
	// link's absolute path. The target is stored relative to the link's
	// directory. Returns CodeAlreadyExists if link is taken; a missing
	// target is allowed.
	Symlink(link, target string) (string, error)

	// Readlink returns the target stored in the link at path, as stored.
	// Returns CodeInvalidPath if path is not a symbolic link.
	Readlink(path string) (string, error)
}

// StreamBackend defines operations that hand out open files.
//
// Handles returned by a memory backend hold the backend's lock only for the
// duration of each call, so they may be used alongside other operations.
// The caller must Close every handle.
type StreamBackend interface {
	// Create opens path for writing, creating or truncating it.
	// The parent directory must exist.
	Create(path string) (File, error)

	// Append opens path for writing at its end, creating it if missing.
	Append(path string) (File, error)

	// Open opens the file at path for reading.
	// Returns CodeInvalidPath if path is a directory.
	Open(path string) (File, error)
}

// File is an open file handle.
//
// It satisfies fs.File, so it can be passed to io/fs consumers, and adds
// writing and seeking.
type File interface {
	fs.File
	io.Writer
	io.Seeker

	// Name returns the absolute path the file was opened with.
	Name() string
}

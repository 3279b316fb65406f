package billy

import (
	"io"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// File wraps billy.File to implement core.File.
// On the memory engine every call takes the backend's store lock, so a
// handle never observes a half-applied operation.
type File struct {
	b    *Backend
	file billy.File
	name string
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	defer f.b.rlock()()
	return f.file.Read(p)
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	defer f.b.lock()()
	return f.file.Write(p)
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	defer f.b.rlock()()
	return f.file.Seek(offset, whence)
}

// Close implements io.Closer.
func (f *File) Close() error {
	defer f.b.rlock()()
	return f.file.Close()
}

// Stat returns metadata for the file's path.
// billy.File has no Stat, so the backend is asked.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.b.Stat(f.name)
}

// Name returns the absolute path the file was opened with.
func (f *File) Name() string {
	return f.name
}

// Truncate changes the size of the file without moving the offset.
func (f *File) Truncate(size int64) error {
	defer f.b.lock()()
	return f.file.Truncate(size)
}

// Sync commits the file to stable storage. It is a no-op for engines
// without Sync, such as memfs.
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

var (
	_ core.File   = (*File)(nil)
	_ io.ReaderAt = (*File)(nil)
)

// ReadAt implements io.ReaderAt.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	defer f.b.rlock()()
	return f.file.ReadAt(p, off)
}

// Create opens path for writing, creating or truncating it. A link at path
// is followed.
func (b *Backend) Create(path string) (core.File, error) {
	return b.openWrite("create", path, os.O_RDWR|os.O_CREATE|os.O_TRUNC)
}

// Append opens path for writing at its end, creating it if missing.
func (b *Backend) Append(path string) (core.File, error) {
	return b.openWrite("append", path, os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

// Open opens the file at path for reading.
func (b *Backend) Open(path string) (core.File, error) {
	abs, err := b.resolve("open", path)
	if err != nil {
		return nil, err
	}

	defer b.rlock()()
	kind, err := b.entryOf(abs)
	if err != nil {
		return nil, b.fail(err, "open", abs, "failed to stat")
	}
	switch kind {
	case entryMissing:
		return nil, b.notFound("open", abs, "no such file")
	case entryDir:
		return nil, b.reject(errors.CodeInvalidPath, "open", abs, "is a directory")
	}

	f, err := b.bfs.Open(abs)
	if err != nil {
		return nil, b.fail(err, "open", abs, "failed to open file")
	}
	return &File{b: b, file: f, name: abs}, nil
}

func (b *Backend) openWrite(op, path string, flag int) (core.File, error) {
	abs, err := b.resolve(op, path)
	if err != nil {
		return nil, err
	}

	defer b.lock()()
	dst, err := b.follow(abs)
	if err != nil {
		return nil, b.fail(err, op, abs, "failed to resolve link")
	}
	if err := b.checkParent(op, dst); err != nil {
		return nil, err
	}

	kind, err := b.entryOf(dst)
	if err != nil {
		return nil, b.fail(err, op, abs, "failed to stat")
	}
	switch kind {
	case entryDir:
		return nil, b.reject(errors.CodeInvalidPath, op, abs, "is a directory")
	case entryMissing:
		delete(b.modes, b.modeKey(dst, true))
	}

	f, err := b.bfs.OpenFile(dst, flag, fileMode)
	if err != nil {
		return nil, b.fail(err, op, abs, "failed to open file")
	}
	return &File{b: b, file: f, name: abs}, nil
}

package billy

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sync/atomic"

	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

var tempSeq atomic.Uint64

// WriteFile creates or truncates the file at path and writes data.
//
// A symbolic link at path is followed and its target is written. An existing
// file keeps its permission bits. Readers observe either the previous content
// or the new content. On the real filesystem the content goes to a temporary
// sibling of the target that is renamed over it.
func (b *Backend) WriteFile(path string, data []byte) error {
	abs, err := b.resolve("write", path)
	if err != nil {
		return err
	}

	defer b.lock()()
	dst, err := b.follow(abs)
	if err != nil {
		return b.fail(err, "write", abs, "failed to resolve link")
	}
	if err := b.checkParent("write", dst); err != nil {
		return err
	}

	kind, err := b.entryOf(dst)
	if err != nil {
		return b.fail(err, "write", abs, "failed to stat")
	}
	if kind == entryDir {
		return b.reject(errors.CodeInvalidPath, "write", abs, "is a directory")
	}

	// Readers of the memory engine are excluded by the store lock, so it
	// can be written in place.
	if b.serialize {
		if kind == entryMissing {
			delete(b.modes, b.modeKey(dst, true))
		}
		if err := b.writeRaw(dst, data); err != nil {
			return b.fail(err, "write", abs, "failed to write file")
		}
		return nil
	}

	var perm fs.FileMode
	if kind == entryFile {
		info, err := b.bfs.Stat(dst)
		if err != nil {
			return b.fail(err, "write", abs, "failed to stat")
		}
		perm = info.Mode().Perm()
	}

	tmp := tempName(dst)
	if err := b.writeRaw(tmp, data); err != nil {
		_ = b.bfs.Remove(tmp)
		return b.fail(err, "write", abs, "failed to write temporary file")
	}
	if kind == entryFile {
		if err := b.chmod(tmp, perm); err != nil {
			_ = b.bfs.Remove(tmp)
			return b.fail(err, "write", abs, "failed to keep file mode")
		}
	}
	if err := b.bfs.Rename(tmp, dst); err != nil {
		_ = b.bfs.Remove(tmp)
		return b.fail(err, "write", abs, "failed to replace file")
	}

	return nil
}

// MkdirAll creates path and any missing ancestors and returns the absolute
// path. Nothing is created if any component names a regular file.
func (b *Backend) MkdirAll(path string) (string, error) {
	abs, err := b.resolve("mkdir", path)
	if err != nil {
		return "", err
	}

	defer b.lock()()
	if _, err := b.mkdirAll(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// MkdirMode is MkdirAll that sets mode on every directory it creates.
func (b *Backend) MkdirMode(path string, mode fs.FileMode) (string, error) {
	abs, err := b.resolve("mkdir", path)
	if err != nil {
		return "", err
	}

	defer b.lock()()
	created, err := b.mkdirAll(abs)
	if err != nil {
		return "", err
	}
	for i := len(created) - 1; i >= 0; i-- {
		if err := b.chmod(created[i], mode); err != nil {
			return "", b.fail(err, "mkdir", abs, "failed to set mode")
		}
	}
	return abs, nil
}

// mkdirAll creates abs and its missing ancestors and returns the
// directories it created, outermost first. The caller holds the store lock.
func (b *Backend) mkdirAll(abs string) ([]string, error) {
	chain := append(ancestors(abs), abs)
	for i, dir := range chain {
		kind, err := b.entryOf(dir)
		if err != nil {
			return nil, b.fail(err, "mkdir", abs, "failed to stat")
		}
		if kind == entryFile {
			return nil, b.reject(errors.CodeInvalidPath, "mkdir", abs, dir+" is not a directory")
		}
		if kind != entryMissing {
			continue
		}

		// Everything below a missing directory is missing too, so the rest
		// of the chain can only fail on engine errors.
		if err := b.bfs.MkdirAll(abs, dirMode); err != nil {
			return nil, b.fail(err, "mkdir", abs, "failed to create directory")
		}
		for _, created := range chain[i:] {
			delete(b.modes, b.modeKey(created, true))
		}
		return chain[i:], nil
	}

	return nil, nil
}

// Mkfile creates an empty file at path if nothing is there and returns the
// absolute path. An existing file is left untouched.
func (b *Backend) Mkfile(path string) (string, error) {
	abs, err := b.resolve("mkfile", path)
	if err != nil {
		return "", err
	}

	defer b.lock()()
	if err := b.mkfile(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// MkfileMode is Mkfile followed by setting mode exactly.
func (b *Backend) MkfileMode(path string, mode fs.FileMode) (string, error) {
	abs, err := b.resolve("mkfile", path)
	if err != nil {
		return "", err
	}

	defer b.lock()()
	if err := b.mkfile(abs); err != nil {
		return "", err
	}
	if err := b.chmod(abs, mode); err != nil {
		return "", b.fail(err, "mkfile", abs, "failed to set mode")
	}
	return abs, nil
}

// mkfile touches abs, or the target of a link at abs. The caller holds the
// store lock.
func (b *Backend) mkfile(abs string) error {
	dst, err := b.follow(abs)
	if err != nil {
		return b.fail(err, "mkfile", abs, "failed to resolve link")
	}
	if err := b.checkParent("mkfile", dst); err != nil {
		return err
	}

	kind, err := b.entryOf(dst)
	if err != nil {
		return b.fail(err, "mkfile", abs, "failed to stat")
	}
	switch kind {
	case entryFile:
		return nil
	case entryDir:
		return b.reject(errors.CodeInvalidPath, "mkfile", abs, "is a directory")
	}

	f, err := b.bfs.OpenFile(dst, os.O_WRONLY|os.O_CREATE, fileMode)
	if err != nil {
		return b.fail(err, "mkfile", abs, "failed to create file")
	}
	if err := f.Close(); err != nil {
		return b.fail(err, "mkfile", abs, "failed to close file")
	}
	delete(b.modes, b.modeKey(dst, true))

	return nil
}

// writeRaw writes data to abs, creating or truncating it.
// The caller holds the store write lock and has checked the parent.
func (b *Backend) writeRaw(abs string, data []byte) (err error) {
	f, err := b.bfs.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	n, err := f.Write(data)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	return err
}

// tempName returns a hidden sibling of abs that no other writer in this
// process will pick.
func tempName(abs string) string {
	name := fmt.Sprintf(".%s.%d-%d.tmp", path.Base(abs), os.Getpid(), tempSeq.Add(1))
	return pathutil.Mash(path.Dir(abs), name)
}

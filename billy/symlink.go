package billy

import (
	"path"
	"path/filepath"

	"github.com/jmgilman/go/vfs/errors"
)

// Symlink creates a link at link pointing to target and returns the link's
// absolute path. The target is stored relative to the link's directory, so
// moving both together keeps the link intact. The target need not exist.
func (b *Backend) Symlink(link, target string) (string, error) {
	abs, err := b.resolve("symlink", link)
	if err != nil {
		return "", err
	}
	to, err := b.resolve("symlink", target)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(path.Dir(abs), to)
	if err != nil {
		return "", b.fail(err, "symlink", abs, "failed to relativize target")
	}
	rel = filepath.ToSlash(rel)

	defer b.lock()()
	if err := b.checkParent("symlink", abs); err != nil {
		return "", err
	}
	kind, err := b.lentryOf(abs)
	if err != nil {
		return "", b.fail(err, "symlink", abs, "failed to stat")
	}
	if kind != entryMissing {
		return "", b.reject(errors.CodeAlreadyExists, "symlink", abs, "link path is taken")
	}

	if err := b.bfs.Symlink(rel, abs); err != nil {
		return "", b.fail(err, "symlink", abs, "failed to create link")
	}
	return abs, nil
}

// Readlink returns the target stored in the link at path.
func (b *Backend) Readlink(path string) (string, error) {
	abs, err := b.resolve("readlink", path)
	if err != nil {
		return "", err
	}

	defer b.rlock()()
	kind, err := b.lentryOf(abs)
	if err != nil {
		return "", b.fail(err, "readlink", abs, "failed to stat")
	}
	switch kind {
	case entryMissing:
		return "", b.notFound("readlink", abs, "no such link")
	case entryFile, entryDir:
		return "", b.reject(errors.CodeInvalidPath, "readlink", abs, "not a symbolic link")
	}

	target, err := b.bfs.Readlink(abs)
	if err != nil {
		return "", b.fail(err, "readlink", abs, "failed to read link")
	}
	return target, nil
}

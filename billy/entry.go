package billy

import (
	"io/fs"
	"path"
	"strings"
	"syscall"

	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// entry is what a path currently names.
type entry int

const (
	entryMissing entry = iota
	entryFile
	entryDir
	entryLink
)

// maxLinkHops bounds symbolic link resolution, as ELOOP does in the kernel.
const maxLinkHops = 40

// entryOf reports what abs names. The caller holds the store lock.
// A path below a regular file is reported as missing; callers that care walk
// the ancestors first.
func (b *Backend) entryOf(abs string) (entry, error) {
	info, err := b.bfs.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return entryDir, nil
	case err == nil:
		return entryFile, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return entryMissing, nil
	default:
		return entryMissing, err
	}
}

// lentryOf is entryOf without following a symbolic link at abs itself.
// A link is reported as entryLink whether or not its target exists.
func (b *Backend) lentryOf(abs string) (entry, error) {
	info, err := b.bfs.Lstat(abs)
	if err == nil && info.Mode()&fs.ModeSymlink != 0 {
		return entryLink, nil
	}
	return b.entryOf(abs)
}

// follow resolves symbolic links at abs until it names something that is
// not a link, or nothing. The caller holds the store lock.
func (b *Backend) follow(abs string) (string, error) {
	cur := abs
	for hop := 0; hop < maxLinkHops; hop++ {
		info, err := b.bfs.Lstat(cur)
		if err != nil || info.Mode()&fs.ModeSymlink == 0 {
			return cur, nil
		}

		target, err := b.bfs.Readlink(cur)
		if err != nil {
			return "", err
		}
		if !path.IsAbs(target) {
			target = path.Join(path.Dir(cur), target)
		}
		cur = path.Clean(target)
	}
	return "", syscall.ELOOP
}

// ancestors returns the directories above abs, outermost first.
// The root has no ancestors.
func ancestors(abs string) []string {
	if abs == root {
		return nil
	}

	parts := strings.Split(strings.TrimPrefix(abs, root), "/")
	dirs := make([]string, 0, len(parts))
	cur := root
	dirs = append(dirs, cur)
	for _, part := range parts[:len(parts)-1] {
		cur = pathutil.Mash(cur, part)
		dirs = append(dirs, cur)
	}
	return dirs
}

// checkParent verifies that every ancestor of abs is an existing directory.
// The caller holds the store lock.
func (b *Backend) checkParent(op, abs string) error {
	for _, dir := range ancestors(abs) {
		kind, err := b.entryOf(dir)
		if err != nil {
			return b.fail(err, op, abs, "failed to inspect parent directory")
		}
		switch kind {
		case entryMissing:
			return b.notFound(op, abs, "parent directory does not exist")
		case entryFile:
			return b.reject(errors.CodeInvalidPath, op, abs, "parent "+dir+" is not a directory")
		}
	}
	return nil
}

// notFound builds a CodeNotFound error that keeps fs.ErrNotExist in its chain.
func (b *Backend) notFound(op, path, message string) error {
	return b.annotate(errors.Wrap(fs.ErrNotExist, errors.CodeNotFound, message), op, path)
}

// resolve makes path absolute, annotating failures with op.
func (b *Backend) resolve(op, path string) (string, error) {
	abs, err := b.Abs(path)
	if err != nil {
		return "", b.annotate(err, op, path)
	}
	return abs, nil
}

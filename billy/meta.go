package billy

import (
	"io/fs"
	"maps"
	"os"
	"strings"
	"syscall"

	"github.com/jmgilman/go/vfs/errors"
)

// modeInfo overrides the permission bits reported by an engine FileInfo.
type modeInfo struct {
	fs.FileInfo
	mode fs.FileMode
}

func (i modeInfo) Mode() fs.FileMode {
	return i.mode
}

// Lstat returns metadata for path without following a link at path itself.
func (b *Backend) Lstat(path string) (fs.FileInfo, error) {
	abs, err := b.resolve("lstat", path)
	if err != nil {
		return nil, err
	}

	defer b.rlock()()
	info, err := b.bfs.Lstat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return nil, b.notFound("lstat", abs, "no such file or directory")
	case err != nil:
		return nil, b.fail(err, "lstat", abs, "failed to lstat")
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		return info, nil
	}
	return b.withMode(b.modeKey(abs, false), info), nil
}

// Chmod sets the permission bits of path, following links.
func (b *Backend) Chmod(path string, mode fs.FileMode) error {
	abs, err := b.resolve("chmod", path)
	if err != nil {
		return err
	}

	defer b.lock()()
	kind, err := b.entryOf(abs)
	if err != nil {
		return b.fail(err, "chmod", abs, "failed to stat")
	}
	if kind == entryMissing {
		return b.notFound("chmod", abs, "no such file or directory")
	}

	if err := b.chmod(abs, mode); err != nil {
		return b.fail(err, "chmod", abs, "failed to change mode")
	}
	return nil
}

// chmod sets the permission bits of abs, or of its link target.
// The caller holds the store write lock.
//
// go-billy's engines do not implement billy.Change, so the real engine is
// changed through the os package (its root is "/", so paths match) and the
// memory engine records the bits in b.modes.
func (b *Backend) chmod(abs string, mode fs.FileMode) error {
	dst, err := b.follow(abs)
	if err != nil {
		return err
	}

	if !b.serialize {
		return os.Chmod(dst, mode.Perm())
	}

	if _, err := b.bfs.Stat(dst); err != nil {
		return err
	}
	b.modes[b.modeKey(dst, true)] = mode.Perm()
	return nil
}

// modeKey names the entry abs refers to in b.modes. follow selects whether a
// link at abs itself is followed; links above it always are.
func (b *Backend) modeKey(abs string, follow bool) string {
	if b.links == nil {
		return abs
	}

	resolve := b.links.entrypath
	if follow {
		resolve = b.links.realpath
	}
	key, err := resolve(abs)
	if err != nil {
		return abs
	}
	return key
}

// withMode applies a recorded permission override for key to info.
// The caller holds the store lock.
func (b *Backend) withMode(key string, info fs.FileInfo) fs.FileInfo {
	perm, ok := b.modes[key]
	if !ok {
		return info
	}
	return modeInfo{FileInfo: info, mode: info.Mode().Type() | perm}
}

// dropModes forgets recorded permissions for abs and everything below it.
func (b *Backend) dropModes(abs string) {
	maps.DeleteFunc(b.modes, func(p string, _ fs.FileMode) bool {
		return within(p, abs)
	})
}

// moveModes carries recorded permissions from src and below over to dst.
func (b *Backend) moveModes(src, dst string) {
	if len(b.modes) == 0 {
		return
	}

	moved := make(map[string]fs.FileMode)
	for p, perm := range b.modes {
		if within(p, src) {
			moved[dst+strings.TrimPrefix(p, src)] = perm
		}
	}
	b.dropModes(src)
	b.dropModes(dst)
	maps.Copy(b.modes, moved)
}

// within reports whether p is dir or lies below it.
func within(p, dir string) bool {
	return p == dir || dir == root || strings.HasPrefix(p, dir+"/")
}

package billy

import (
	"io/fs"
	"strings"

	"github.com/go-git/go-billy/v5/util"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// Remove deletes a file or an empty directory.
func (b *Backend) Remove(path string) error {
	abs, err := b.resolve("remove", path)
	if err != nil {
		return err
	}
	if abs == root {
		return b.reject(errors.CodeInvalidPath, "remove", abs, "cannot remove the root directory")
	}

	defer b.lock()()
	kind, err := b.lentryOf(abs)
	if err != nil {
		return b.fail(err, "remove", abs, "failed to stat")
	}
	switch kind {
	case entryMissing:
		return b.notFound("remove", abs, "no such file or directory")
	case entryDir:
		children, err := b.bfs.ReadDir(abs)
		if err != nil {
			return b.fail(err, "remove", abs, "failed to read directory")
		}
		if len(children) > 0 {
			return b.reject(errors.CodeConflict, "remove", abs, "directory not empty")
		}
	}

	key := b.modeKey(abs, false)
	if err := b.bfs.Remove(abs); err != nil {
		return b.fail(err, "remove", abs, "failed to remove")
	}
	b.dropModes(key)
	return nil
}

// RemoveAll deletes path and everything below it.
// A missing path is not an error.
func (b *Backend) RemoveAll(path string) error {
	abs, err := b.resolve("remove_all", path)
	if err != nil {
		return err
	}
	if abs == root {
		return b.reject(errors.CodeInvalidPath, "remove_all", abs, "cannot remove the root directory")
	}

	defer b.lock()()
	kind, err := b.lentryOf(abs)
	if err != nil {
		return b.fail(err, "remove_all", abs, "failed to stat")
	}
	switch kind {
	case entryMissing:
		return nil
	case entryLink:
		// The link goes, its target stays.
		if err := b.bfs.Remove(abs); err != nil {
			return b.fail(err, "remove_all", abs, "failed to remove link")
		}
		return nil
	}

	key := b.modeKey(abs, false)
	if err := util.RemoveAll(b.bfs, abs); err != nil {
		return b.fail(err, "remove_all", abs, "failed to remove")
	}
	b.dropModes(key)
	return nil
}

// Rename moves src to dst. A regular file or link at dst is replaced; a
// directory at dst, or any entry at dst when src is a directory, is rejected.
// A link at src is moved itself, not its target.
func (b *Backend) Rename(src, dst string) error {
	from, err := b.resolve("rename", src)
	if err != nil {
		return err
	}
	to, err := b.resolve("rename", dst)
	if err != nil {
		return err
	}

	defer b.lock()()
	srcKind, err := b.lentryOf(from)
	if err != nil {
		return b.fail(err, "rename", from, "failed to stat source")
	}
	if srcKind == entryMissing {
		return b.notFound("rename", from, "no such file or directory")
	}
	if from == to {
		return nil
	}
	if from == root || strings.HasPrefix(to, from+"/") {
		return b.reject(errors.CodeInvalidPath, "rename", to, "cannot move "+from+" into itself")
	}

	if err := b.checkParent("rename", to); err != nil {
		return err
	}
	dstKind, err := b.lentryOf(to)
	if err != nil {
		return b.fail(err, "rename", to, "failed to stat destination")
	}
	if dstKind == entryDir || (dstKind != entryMissing && srcKind == entryDir) {
		return b.reject(errors.CodeInvalidPath, "rename", to, "destination is in the way")
	}

	if b.kind == core.KindMemory {
		fromKey, toKey := b.modeKey(from, false), b.modeKey(to, false)
		if err := b.move(from, to, srcKind, dstKind); err != nil {
			return b.fail(err, "rename", from, "failed to move")
		}
		b.moveModes(fromKey, toKey)
		return nil
	}

	if err := b.bfs.Rename(from, to); err != nil {
		return b.fail(err, "rename", from, "failed to rename")
	}
	return nil
}

// move relocates src to dst by copying and then removing src.
// memfs selects what to move by string prefix, so renaming "/a" would also
// drag "/ab" along.
func (b *Backend) move(src, dst string, srcKind, dstKind entry) error {
	// A link at dst is replaced, never written through.
	if dstKind == entryLink {
		if err := b.bfs.Remove(dst); err != nil {
			return err
		}
	}

	switch srcKind {
	case entryDir:
		if err := b.copyTree(src, dst); err != nil {
			return err
		}
		return util.RemoveAll(b.bfs, src)
	case entryLink:
		if err := b.copyLink(src, dst); err != nil {
			return err
		}
	default:
		if err := b.copyFile(src, dst); err != nil {
			return err
		}
	}
	return b.bfs.Remove(src)
}

func (b *Backend) copyTree(src, dst string) error {
	if err := b.bfs.MkdirAll(dst, dirMode); err != nil {
		return err
	}

	infos, err := b.bfs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, info := range infos {
		from := pathutil.Mash(src, info.Name())
		to := pathutil.Mash(dst, info.Name())

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			err = b.copyLink(from, to)
		case info.IsDir():
			err = b.copyTree(from, to)
		default:
			err = b.copyFile(from, to)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (b *Backend) copyFile(src, dst string) error {
	data, err := util.ReadFile(b.bfs, src)
	if err != nil {
		return err
	}
	return b.writeRaw(dst, data)
}

// copyLink recreates the link at src as dst with the same stored target.
func (b *Backend) copyLink(src, dst string) error {
	target, err := b.bfs.Readlink(src)
	if err != nil {
		return err
	}
	return b.bfs.Symlink(target, dst)
}

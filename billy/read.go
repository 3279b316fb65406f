package billy

import (
	"io/fs"
	"slices"

	"github.com/go-git/go-billy/v5/util"
	"github.com/samber/lo"

	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// Exists reports whether anything is present at path.
// Paths that cannot be resolved are reported as absent.
func (b *Backend) Exists(path string) bool {
	abs, err := b.Abs(path)
	if err != nil {
		return false
	}

	defer b.rlock()()
	kind, err := b.entryOf(abs)
	return err == nil && kind != entryMissing
}

// Stat returns metadata for path.
func (b *Backend) Stat(path string) (fs.FileInfo, error) {
	abs, err := b.resolve("stat", path)
	if err != nil {
		return nil, err
	}

	defer b.rlock()()
	kind, err := b.entryOf(abs)
	if err != nil {
		return nil, b.fail(err, "stat", abs, "failed to stat")
	}
	if kind == entryMissing {
		return nil, b.notFound("stat", abs, "no such file or directory")
	}

	info, err := b.bfs.Stat(abs)
	if err != nil {
		return nil, b.fail(err, "stat", abs, "failed to stat")
	}
	if b.serialize {
		info = b.withMode(b.modeKey(abs, true), info)
	}
	return info, nil
}

// ReadFile returns the contents of the file at path.
func (b *Backend) ReadFile(path string) ([]byte, error) {
	abs, err := b.resolve("read", path)
	if err != nil {
		return nil, err
	}

	defer b.rlock()()
	kind, err := b.entryOf(abs)
	if err != nil {
		return nil, b.fail(err, "read", abs, "failed to stat")
	}
	switch kind {
	case entryMissing:
		return nil, b.notFound("read", abs, "no such file")
	case entryDir:
		return nil, b.reject(errors.CodeInvalidPath, "read", abs, "is a directory")
	}

	data, err := util.ReadFile(b.bfs, abs)
	if err != nil {
		return nil, b.fail(err, "read", abs, "failed to read file")
	}
	return data, nil
}

// ReadDir returns the sorted absolute paths of the direct children of path.
func (b *Backend) ReadDir(path string) ([]string, error) {
	abs, err := b.resolve("readdir", path)
	if err != nil {
		return nil, err
	}

	defer b.rlock()()
	kind, err := b.entryOf(abs)
	if err != nil {
		return nil, b.fail(err, "readdir", abs, "failed to stat")
	}
	switch kind {
	case entryMissing:
		return nil, b.notFound("readdir", abs, "no such directory")
	case entryFile:
		return nil, b.reject(errors.CodeInvalidPath, "readdir", abs, "not a directory")
	}

	infos, err := b.bfs.ReadDir(abs)
	if err != nil {
		return nil, b.fail(err, "readdir", abs, "failed to read directory")
	}

	paths := lo.Map(infos, func(info fs.FileInfo, _ int) string {
		return pathutil.Mash(abs, info.Name())
	})
	slices.Sort(paths)
	return paths, nil
}

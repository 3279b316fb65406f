package vfs

import (
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// Entry is one path visited by Entries.
type Entry struct {
	// Path is the absolute path.
	Path string
	// Info describes Path itself; a symbolic link is not followed.
	Info fs.FileInfo
	// Target is the absolute path a symbolic link points to, or "" for
	// anything else.
	Target string
}

// IsSymlink reports whether the entry is a symbolic link.
func (e Entry) IsSymlink() bool {
	return e.Info.Mode()&fs.ModeSymlink != 0
}

// Entries returns path itself followed by everything below it, sorted by
// path. Symbolic links are reported but not descended into.
func Entries(path string) ([]Entry, error) {
	b := Current()

	start, err := b.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := b.Lstat(start)
	if err != nil {
		return nil, err
	}

	paths := []string{start}
	if info.IsDir() {
		below, err := walk(b, start, func(fs.FileInfo) bool { return true })
		if err != nil {
			return nil, err
		}
		paths = append(paths, below...)
	}

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		info, err := b.Lstat(p)
		if errors.HasCode(err, errors.CodeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		e := Entry{Path: p, Info: info}
		if e.IsSymlink() {
			if e.Target, err = linkTarget(b, p); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Dirs returns the sorted absolute paths of the directories directly below
// path. Symbolic links are not included.
func Dirs(path string) ([]string, error) {
	return children(Current(), path, fs.FileInfo.IsDir)
}

// Files returns the sorted absolute paths of the regular files directly below
// path. Symbolic links are not included.
func Files(path string) ([]string, error) {
	return children(Current(), path, isFile)
}

// AllPaths returns every path below path, recursively, sorted and absolute.
// The starting path itself is not included. Symbolic links are listed but
// not descended into.
func AllPaths(path string) ([]string, error) {
	return walk(Current(), path, func(fs.FileInfo) bool { return true })
}

// AllDirs returns every directory below path, recursively, sorted and absolute.
func AllDirs(path string) ([]string, error) {
	return walk(Current(), path, fs.FileInfo.IsDir)
}

// AllFiles returns every regular file below path, recursively, sorted and
// absolute.
func AllFiles(path string) ([]string, error) {
	return walk(Current(), path, isFile)
}

// Copy copies the file or directory tree at src to dst.
//
// If dst is an existing directory the copy is placed inside it under the
// base name of src. Files at the destination are overwritten. Symbolic links
// inside a copied tree are recreated with the same target. A directory
// cannot be copied into itself.
func Copy(src, dst string) error {
	b := Current()

	from, err := b.Abs(src)
	if err != nil {
		return err
	}
	to, err := b.Abs(dst)
	if err != nil {
		return err
	}

	info, err := b.Stat(from)
	if err != nil {
		return err
	}
	if dstInfo, err := b.Stat(to); err == nil && dstInfo.IsDir() {
		to = Mash(to, path.Base(from))
	}
	if from == to {
		return nil
	}

	if !info.IsDir() {
		return copyFile(b, from, to)
	}

	if from == Root() || strings.HasPrefix(to, from+"/") {
		return errors.WithContextMap(
			errors.New(errors.CodeInvalidPath, "cannot copy a directory into itself"),
			map[string]interface{}{"op": "copy", "path": to, "backend": b.Kind().String()},
		)
	}

	if _, err := b.MkdirAll(to); err != nil {
		return err
	}
	entries, err := walk(b, from, func(fs.FileInfo) bool { return true })
	if err != nil {
		return err
	}
	for _, entry := range entries {
		target := Mash(to, strings.TrimPrefix(entry, from))
		entryInfo, err := b.Lstat(entry)
		if err != nil {
			return err
		}
		switch {
		case entryInfo.Mode()&fs.ModeSymlink != 0:
			err = copyLink(b, entry, target)
		case entryInfo.IsDir():
			_, err = b.MkdirAll(target)
		default:
			err = copyFile(b, entry, target)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func copyFile(b core.Backend, from, to string) error {
	data, err := b.ReadFile(from)
	if err != nil {
		return err
	}
	return b.WriteFile(to, data)
}

// copyLink recreates the link at from as to, keeping a relative target
// relative. Whatever is at to is replaced.
func copyLink(b core.Backend, from, to string) error {
	stored, err := b.Readlink(from)
	if err != nil {
		return err
	}
	target := stored
	if !path.IsAbs(stored) {
		target = path.Join(path.Dir(to), stored)
	}

	if b.Exists(to) || isSymlink(b, to) {
		if err := b.Remove(to); err != nil {
			return err
		}
	}
	_, err = b.Symlink(to, target)
	return err
}

// linkTarget returns the absolute target of the link at abs.
func linkTarget(b core.Backend, abs string) (string, error) {
	stored, err := b.Readlink(abs)
	if err != nil {
		return "", err
	}
	if path.IsAbs(stored) {
		return path.Clean(stored), nil
	}
	return path.Join(path.Dir(abs), stored), nil
}

func isSymlink(b core.Backend, p string) bool {
	info, err := b.Lstat(p)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

func isFile(info fs.FileInfo) bool {
	return info.Mode().IsRegular()
}

// children lists the direct children of dir that satisfy keep.
// Entries removed between listing and stat are skipped.
func children(b core.Backend, dir string, keep func(fs.FileInfo) bool) ([]string, error) {
	paths, err := b.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := b.Lstat(p)
		if errors.HasCode(err, errors.CodeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if keep(info) {
			out = append(out, p)
		}
	}
	return out, nil
}

// walk collects every path below dir that satisfies keep, sorted.
func walk(b core.Backend, dir string, keep func(fs.FileInfo) bool) ([]string, error) {
	var out []string

	pending := []string{dir}
	for len(pending) > 0 {
		next := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		paths, err := b.ReadDir(next)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			info, err := b.Lstat(p)
			if errors.HasCode(err, errors.CodeNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if info.IsDir() {
				pending = append(pending, p)
			}
			if keep(info) {
				out = append(out, p)
			}
		}
	}

	slices.Sort(out)
	return out, nil
}

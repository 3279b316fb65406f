package billy

import (
	"io/fs"
	"os"
	"path"
	"strings"
	"syscall"

	"github.com/go-git/go-billy/v5"
)

// linkFS resolves symbolic links in every path component before calling the
// wrapped filesystem. memfs only follows a link when it is the last
// component, so "/link/file" would otherwise be missing even when "/link"
// points to a directory holding "file".
//
// Operations that act on an entry itself (Lstat, Readlink, Remove, Rename,
// Symlink) resolve only the parent; the rest resolve the whole path.
type linkFS struct {
	billy.Filesystem
}

// realpath resolves links in every component of p.
func (l *linkFS) realpath(p string) (string, error) {
	hops := 0
	return l.resolve(p, &hops)
}

// entrypath resolves links in the parent of p and keeps its last component.
func (l *linkFS) entrypath(p string) (string, error) {
	p = path.Clean(p)
	if p == root {
		return p, nil
	}
	dir, err := l.realpath(path.Dir(p))
	if err != nil {
		return "", err
	}
	return path.Join(dir, path.Base(p)), nil
}

func (l *linkFS) resolve(p string, hops *int) (string, error) {
	cur := root
	for _, part := range strings.Split(strings.Trim(path.Clean(p), "/"), "/") {
		if part == "" {
			continue
		}

		next := path.Join(cur, part)
		for {
			info, err := l.Filesystem.Lstat(next)
			if err != nil || info.Mode()&fs.ModeSymlink == 0 {
				break
			}

			*hops++
			if *hops > maxLinkHops {
				return "", &fs.PathError{Op: "resolve", Path: p, Err: syscall.ELOOP}
			}
			target, err := l.Filesystem.Readlink(next)
			if err != nil {
				return "", err
			}
			if !path.IsAbs(target) {
				target = path.Join(cur, target)
			}
			if next, err = l.resolve(target, hops); err != nil {
				return "", err
			}
		}
		cur = next
	}
	return cur, nil
}

func (l *linkFS) Create(filename string) (billy.File, error) {
	return l.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o666)
}

func (l *linkFS) Open(filename string) (billy.File, error) {
	return l.OpenFile(filename, os.O_RDONLY, 0)
}

func (l *linkFS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	p, err := l.realpath(filename)
	if err != nil {
		return nil, err
	}
	return l.Filesystem.OpenFile(p, flag, perm)
}

func (l *linkFS) Stat(filename string) (os.FileInfo, error) {
	p, err := l.realpath(filename)
	if err != nil {
		return nil, err
	}
	info, err := l.Filesystem.Stat(p)
	if err != nil {
		return nil, err
	}
	return namedInfo{FileInfo: info, name: path.Base(filename)}, nil
}

func (l *linkFS) ReadDir(dirname string) ([]os.FileInfo, error) {
	p, err := l.realpath(dirname)
	if err != nil {
		return nil, err
	}
	return l.Filesystem.ReadDir(p)
}

func (l *linkFS) MkdirAll(filename string, perm os.FileMode) error {
	p, err := l.realpath(filename)
	if err != nil {
		return err
	}
	return l.Filesystem.MkdirAll(p, perm)
}

func (l *linkFS) Lstat(filename string) (os.FileInfo, error) {
	p, err := l.entrypath(filename)
	if err != nil {
		return nil, err
	}
	return l.Filesystem.Lstat(p)
}

func (l *linkFS) Readlink(link string) (string, error) {
	p, err := l.entrypath(link)
	if err != nil {
		return "", err
	}
	return l.Filesystem.Readlink(p)
}

func (l *linkFS) Symlink(target, link string) error {
	p, err := l.entrypath(link)
	if err != nil {
		return err
	}
	return l.Filesystem.Symlink(target, p)
}

func (l *linkFS) Remove(filename string) error {
	p, err := l.entrypath(filename)
	if err != nil {
		return err
	}
	return l.Filesystem.Remove(p)
}

func (l *linkFS) Rename(oldpath, newpath string) error {
	from, err := l.entrypath(oldpath)
	if err != nil {
		return err
	}
	to, err := l.entrypath(newpath)
	if err != nil {
		return err
	}
	return l.Filesystem.Rename(from, to)
}

// namedInfo reports the name a path was looked up by rather than the name of
// the entry it resolved to, as os.Stat does.
type namedInfo struct {
	os.FileInfo
	name string
}

func (i namedInfo) Name() string {
	return i.name
}

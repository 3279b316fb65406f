package core

import (
	"io/fs"
	"path"
	"strings"

	"github.com/jmgilman/go/vfs/errors"
)

// CopyFromFS copies every file below srcRoot in src into dst under dstDir,
// preserving the directory structure. Use "." as srcRoot to copy the entire
// source filesystem.
//
// It is typically used to seed an in-memory backend from embedded fixtures:
//
//	//go:embed testdata
//	var fixtures embed.FS
//
//	mem, _ := billy.NewMemory()
//	err := core.CopyFromFS(fixtures, mem, "testdata", "/srv")
func CopyFromFS(src fs.FS, dst Backend, srcRoot, dstDir string) error {
	if srcRoot == "" {
		srcRoot = "."
	}

	return fs.WalkDir(src, srcRoot, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WithContext(
				errors.Wrap(err, errors.CodeIO, "failed to walk source"),
				"path", filePath,
			)
		}

		rel := filePath
		if srcRoot != "." {
			rel = strings.TrimPrefix(strings.TrimPrefix(filePath, srcRoot), "/")
		}
		target := path.Join(dstDir, rel)

		if d.IsDir() {
			_, err := dst.MkdirAll(target)
			return err
		}

		data, err := fs.ReadFile(src, filePath)
		if err != nil {
			return errors.WithContext(
				errors.Wrap(err, errors.CodeIO, "failed to read source file"),
				"path", filePath,
			)
		}

		return dst.WriteFile(target, data)
	})
}

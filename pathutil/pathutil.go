package pathutil

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/samber/lo"

	"github.com/jmgilman/go/vfs/errors"
)

const separator = "/"

func init() {
	// HOME may change between calls, in tests especially.
	homedir.DisableCache = true
}

// Mash joins base and segment with exactly one separator between them.
//
// Repeated separators collapse and "." components are dropped; ".." is kept
// as is. The result is absolute if base is absolute, or if base is empty and
// segment is absolute. Mash never fails.
//
//	Mash("/a", "b")  // "/a/b"
//	Mash("/a/", "b") // "/a/b"
//	Mash("/a", "/b") // "/a/b"
func Mash(base, segment string) string {
	base = filepath.ToSlash(base)
	segment = filepath.ToSlash(segment)

	parts := lo.Filter(strings.Split(base+separator+segment, separator), func(p string, _ int) bool {
		return p != "" && p != "."
	})
	joined := strings.Join(parts, separator)

	if strings.HasPrefix(base, separator) || (base == "" && strings.HasPrefix(segment, separator)) {
		return separator + joined
	}
	return joined
}

// Clean returns the shortest lexical equivalent of p, resolving "." and ".."
// components. ".." never climbs above the root of an absolute path.
func Clean(p string) string {
	return filepath.ToSlash(path.Clean(filepath.ToSlash(p)))
}

// Expand replaces a leading "~" with the user's home directory and then
// substitutes $VAR and ${VAR} references from the environment.
// Unset variables expand to the empty string.
func Expand(p string) (string, error) {
	if strings.HasPrefix(p, "~") {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return "", errors.WithContext(
				errors.Wrap(err, errors.CodeInvalidPath, "failed to expand home directory"),
				"path", p,
			)
		}
		p = expanded
	}

	return os.ExpandEnv(p), nil
}

// Abs expands p and resolves it against cwd when it is relative, returning a
// clean absolute path. Empty paths and paths containing NUL are rejected with
// CodeInvalidPath.
func Abs(cwd, p string) (string, error) {
	if err := validate(p); err != nil {
		return "", err
	}

	expanded, err := Expand(p)
	if err != nil {
		return "", err
	}
	if err := validate(expanded); err != nil {
		return "", err
	}

	expanded = filepath.ToSlash(expanded)
	if !path.IsAbs(expanded) {
		expanded = Mash(cwd, expanded)
	}

	return Clean(expanded), nil
}

func validate(p string) error {
	if p == "" {
		return errors.New(errors.CodeInvalidPath, "path is empty")
	}
	if strings.ContainsRune(p, 0) {
		return errors.WithContext(
			errors.New(errors.CodeInvalidPath, "path contains NUL byte"),
			"path", p,
		)
	}
	return nil
}

package billy

import (
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// Abs resolves path against the backend's working directory after "~" and
// environment expansion. It does not consult storage.
func (b *Backend) Abs(path string) (string, error) {
	b.cwdMu.RLock()
	cwd := b.cwd
	b.cwdMu.RUnlock()

	return pathutil.Abs(cwd, path)
}

// Cwd returns the backend's working directory.
func (b *Backend) Cwd() (string, error) {
	b.cwdMu.RLock()
	defer b.cwdMu.RUnlock()
	return b.cwd, nil
}

// Chdir makes path, which must be an existing directory, the working
// directory and returns its absolute form.
func (b *Backend) Chdir(path string) (string, error) {
	abs, err := b.resolve("chdir", path)
	if err != nil {
		return "", err
	}

	unlock := b.rlock()
	kind, err := b.entryOf(abs)
	unlock()
	if err != nil {
		return "", b.fail(err, "chdir", abs, "failed to stat")
	}
	switch kind {
	case entryMissing:
		return "", b.notFound("chdir", abs, "no such directory")
	case entryFile:
		return "", b.reject(errors.CodeInvalidPath, "chdir", abs, "not a directory")
	}

	b.cwdMu.Lock()
	b.cwd = abs
	b.cwdMu.Unlock()

	return abs, nil
}

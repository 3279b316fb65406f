package billy

import (
	"io/fs"
	"os"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

const (
	root     = "/"
	dirMode  = 0o755
	fileMode = 0o644
)

// Backend adapts a billy.Filesystem to core.Backend.
//
// A Backend is safe for concurrent use. Its working directory is private to
// the Backend; Chdir never changes the process working directory.
type Backend struct {
	kind core.Kind
	bfs  billy.Filesystem

	// serialize is set for engines without internal locking.
	serialize bool
	store     sync.RWMutex

	// links is the memory engine's link resolver, nil for the real engine.
	links *linkFS

	// modes holds permission bits set by Chmod on engines that cannot
	// change them, keyed by link-free absolute path. Guarded by store.
	modes map[string]fs.FileMode

	cwdMu sync.RWMutex
	cwd   string
}

var _ core.Backend = (*Backend)(nil)

// NewMemory creates a backend over an empty go-billy memfs.
// The working directory is "/" unless WithCwd is given, in which case the
// directory is created. Returns CodeBackendInit if it cannot be.
func NewMemory(opts ...Option) (*Backend, error) {
	cfg := newConfig(opts)

	links := &linkFS{Filesystem: memfs.New()}
	b := &Backend{
		kind:      core.KindMemory,
		bfs:       links,
		serialize: true,
		links:     links,
		modes:     make(map[string]fs.FileMode),
		cwd:       root,
	}

	if cfg.cwd != "" {
		dir, err := b.MkdirAll(cfg.cwd)
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeBackendInit,
				"failed to create working directory",
				map[string]interface{}{"backend": b.kind.String(), "path": cfg.cwd})
		}
		b.cwd = dir
	}

	return b, nil
}

// NewReal creates a backend over the operating-system filesystem.
// The working directory is the process's unless WithCwd is given.
// Returns CodeBackendInit if the working directory cannot be established.
func NewReal(opts ...Option) (*Backend, error) {
	cfg := newConfig(opts)

	b := &Backend{
		kind: core.KindReal,
		bfs:  osfs.New(root),
	}
	initCtx := func(path string) map[string]interface{} {
		return map[string]interface{}{"backend": b.kind.String(), "path": path}
	}

	cwd := cfg.cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.WrapWithContext(err, errors.CodeBackendInit,
				"failed to determine working directory", initCtx(""))
		}
		cwd = wd
	}

	dir, err := pathutil.Abs(root, cwd)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeBackendInit,
			"invalid working directory", initCtx(cwd))
	}
	info, err := b.bfs.Stat(dir)
	if err != nil {
		return nil, errors.WrapWithContext(err, errors.CodeBackendInit,
			"failed to stat working directory", initCtx(dir))
	}
	if !info.IsDir() {
		return nil, errors.WithContextMap(
			errors.New(errors.CodeBackendInit, "working directory is not a directory"),
			initCtx(dir),
		)
	}
	b.cwd = dir

	return b, nil
}

// Kind reports which variant this backend is.
func (b *Backend) Kind() core.Kind {
	return b.kind
}

// Unwrap returns the underlying billy.Filesystem.
// Calls made through it bypass the memory backend's lock.
func (b *Backend) Unwrap() billy.Filesystem {
	return b.bfs
}

// rlock takes the store read lock when the engine needs it and returns the
// matching unlock.
func (b *Backend) rlock() func() {
	if !b.serialize {
		return func() {}
	}
	b.store.RLock()
	return b.store.RUnlock
}

// lock takes the store write lock when the engine needs it and returns the
// matching unlock.
func (b *Backend) lock() func() {
	if !b.serialize {
		return func() {}
	}
	b.store.Lock()
	return b.store.Unlock
}

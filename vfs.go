package vfs

import (
	"sync"

	"github.com/samber/lo"

	"github.com/jmgilman/go/vfs/billy"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
	"github.com/jmgilman/go/vfs/pathutil"
)

// handle binds the process to exactly one backend.
type handle struct {
	mu      sync.RWMutex
	backend core.Backend
}

var global handle

// get returns the bound backend, binding the real filesystem on first use.
func (h *handle) get() core.Backend {
	h.mu.RLock()
	b := h.backend
	h.mu.RUnlock()
	if b != nil {
		return b
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.backend == nil {
		h.backend = defaultBackend()
		log().Debug("bound default backend", "kind", h.backend.Kind().String())
	}
	return h.backend
}

// swap installs b and returns the backend it replaced, which may be nil.
func (h *handle) swap(b core.Backend) core.Backend {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.backend
	h.backend = b
	return prev
}

// defaultBackend builds the real backend. If the process working directory
// is unavailable it starts in the root instead, and only if that fails too
// does it fall back to memory.
func defaultBackend() core.Backend {
	rb, err := billy.NewReal()
	if err == nil {
		return rb
	}
	log().Warn("real backend unavailable in working directory, using root", "error", err)

	rb, err = billy.NewReal(billy.WithCwd("/"))
	if err == nil {
		return rb
	}
	log().Error("real backend unavailable, using memory", "error", err)

	// NewMemory fails only on a WithCwd option.
	mb, _ := billy.NewMemory()
	return mb
}

// Select builds a fresh backend of the given kind and installs it.
//
// Selecting the memory backend again yields a new, empty store. If the
// backend cannot be built, or kind is not a known variant, Select returns
// CodeBackendInit and the current binding is kept.
func Select(kind core.Kind, opts ...billy.Option) error {
	b, err := newBackend(kind, opts)
	if err != nil {
		log().Warn("backend selection failed", "kind", kind.String(), "error", err)
		return err
	}

	install(b)
	return nil
}

// SelectMemory installs a fresh in-memory backend.
//
// This always discards the store in use, even when the bound backend is
// already a memory backend; tests rely on it for a clean slate. To keep
// working against an existing store, hold on to Current and pass it to Set.
func SelectMemory(opts ...billy.Option) error {
	return Select(core.KindMemory, opts...)
}

// SelectReal installs a fresh backend over the operating-system filesystem.
func SelectReal(opts ...billy.Option) error {
	return Select(core.KindReal, opts...)
}

// Set installs an already-built backend.
// A nil backend, including a typed nil pointer, is rejected with
// CodeBackendInit and the current binding is kept.
func Set(b core.Backend) error {
	if lo.IsNil(b) {
		err := errors.New(errors.CodeBackendInit, "backend is nil")
		log().Warn("backend selection failed", "error", err)
		return err
	}

	install(b)
	return nil
}

// Current returns the bound backend. Holding on to the result pins it: later
// calls through it keep using the same backend even if another is selected.
func Current() core.Backend {
	return global.get()
}

// CurrentKind reports the kind of the bound backend.
func CurrentKind() core.Kind {
	return Current().Kind()
}

func install(b core.Backend) {
	attrs := []any{"kind", b.Kind().String()}

	prev := global.swap(b)
	if prev != nil {
		attrs = append(attrs, "previous", prev.Kind().String())
	}
	log().Info("installed backend", attrs...)
}

func newBackend(kind core.Kind, opts []billy.Option) (core.Backend, error) {
	switch kind {
	case core.KindMemory:
		mb, err := billy.NewMemory(opts...)
		if err != nil {
			return nil, err
		}
		return mb, nil
	case core.KindReal:
		rb, err := billy.NewReal(opts...)
		if err != nil {
			return nil, err
		}
		return rb, nil
	default:
		return nil, errors.Newf(errors.CodeBackendInit, "unknown backend kind %q", kind.String())
	}
}

// Root returns the root directory of every backend.
func Root() string {
	return "/"
}

// Mash joins base and segment with exactly one separator.
// See pathutil.Mash.
func Mash(base, segment string) string {
	return pathutil.Mash(base, segment)
}

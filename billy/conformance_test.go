package billy_test

import (
	"testing"

	"github.com/jmgilman/go/vfs/billy"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/vfstest"
)

// TestMemoryConformance runs the conformance suite against the memory backend.
func TestMemoryConformance(t *testing.T) {
	vfstest.TestSuite(t, func() core.Backend { return newMemory(t) })
}

// TestMemoryConformance_WithCwd runs the suite from a nested working directory.
func TestMemoryConformance_WithCwd(t *testing.T) {
	vfstest.TestSuite(t, func() core.Backend { return newMemory(t, billy.WithCwd("/home/tester")) })
}

// TestRealConformance runs the conformance suite against the real backend,
// confined to a fresh temporary directory per group.
func TestRealConformance(t *testing.T) {
	vfstest.TestSuite(t, func() core.Backend {
		b, err := billy.NewReal(billy.WithCwd(t.TempDir()))
		if err != nil {
			t.Fatalf("NewReal(): %v", err)
		}
		return b
	})
}

func newMemory(t *testing.T, opts ...billy.Option) core.Backend {
	t.Helper()
	b, err := billy.NewMemory(opts...)
	if err != nil {
		t.Fatalf("NewMemory(): %v", err)
	}
	return b
}

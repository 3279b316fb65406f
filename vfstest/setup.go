package vfstest

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs"
	"github.com/jmgilman/go/vfs/billy"
	"github.com/jmgilman/go/vfs/core"
)

// EnvBackend names the variable that picks the backend used by Setup.
// It accepts any name core.ParseKind understands; the default is memory.
const EnvBackend = "VFSTEST_BACKEND"

// scratchRoot holds per-test directories on the memory backend.
const scratchRoot = "/tmp/vfstest"

var nameReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// Setup installs a fresh backend on the global facade for the duration of
// the test and returns a scratch directory unique to it. The backend's
// working directory is the scratch directory. The previous backend is
// restored when the test finishes.
func Setup(t testing.TB) string {
	t.Helper()

	kind := core.KindMemory
	if name := os.Getenv(EnvBackend); name != "" {
		parsed, err := core.ParseKind(name)
		require.NoError(t, err, "invalid %s", EnvBackend)
		kind = parsed
	}

	return SetupKind(t, kind)
}

// SetupMemory is Setup with the memory backend regardless of EnvBackend.
func SetupMemory(t testing.TB) string {
	t.Helper()
	return SetupKind(t, core.KindMemory)
}

// SetupReal is Setup with the real backend regardless of EnvBackend. The
// scratch directory is a fresh temporary directory.
func SetupReal(t testing.TB) string {
	t.Helper()
	return SetupKind(t, core.KindReal)
}

// SetupKind is Setup with an explicit backend kind.
func SetupKind(t testing.TB, kind core.Kind) string {
	t.Helper()

	prev := vfs.Current()
	t.Cleanup(func() {
		_ = vfs.Set(prev)
	})

	var dir string
	switch kind {
	case core.KindReal:
		dir = t.TempDir()
	default:
		dir = vfs.Mash(scratchRoot, nameReplacer.Replace(t.Name()))
	}

	require.NoError(t, vfs.Select(kind, billy.WithCwd(dir)))

	cwd, err := vfs.Cwd()
	require.NoError(t, err)
	return cwd
}

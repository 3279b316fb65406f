package vfs

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/billy"
	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// unbind clears the global handle for the duration of the test.
func unbind(t *testing.T) {
	t.Helper()
	prev := global.swap(nil)
	t.Cleanup(func() { global.swap(prev) })
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLazyBindingDefaultsToReal(t *testing.T) {
	unbind(t)
	logs := captureLogs(t)

	require.Equal(t, core.KindReal, CurrentKind())
	require.Contains(t, logs.String(), "bound default backend")
	require.Contains(t, logs.String(), "kind=real")
}

func TestLazyBindingIsStable(t *testing.T) {
	unbind(t)

	first := Current()
	second := Current()
	require.True(t, first == second)
}

func TestSelectLogsInstall(t *testing.T) {
	unbind(t)
	logs := captureLogs(t)

	require.NoError(t, SelectMemory())
	require.Contains(t, logs.String(), "installed backend")
	require.Contains(t, logs.String(), "kind=memory")
	require.NotContains(t, logs.String(), "previous=")

	require.NoError(t, SelectMemory())
	require.Contains(t, logs.String(), "previous=memory")
}

func TestSelectUnknownKindKeepsBinding(t *testing.T) {
	unbind(t)
	logs := captureLogs(t)

	require.NoError(t, SelectMemory())
	before := Current()

	err := Select(core.KindUnknown)
	require.True(t, errors.HasCode(err, errors.CodeBackendInit))
	require.True(t, before == Current())
	require.Contains(t, logs.String(), "backend selection failed")
}

func TestSelectRealFailureKeepsBinding(t *testing.T) {
	unbind(t)

	require.NoError(t, SelectMemory())
	before := Current()

	err := SelectReal(billy.WithCwd("/definitely/not/a/real/dir"))
	require.True(t, errors.HasCode(err, errors.CodeBackendInit))
	require.True(t, before == Current())
}

func TestSetNil(t *testing.T) {
	unbind(t)
	require.NoError(t, SelectMemory())
	before := Current()

	err := Set(nil)
	require.True(t, errors.HasCode(err, errors.CodeBackendInit))
	require.True(t, before == Current())
}

func TestSetTypedNil(t *testing.T) {
	unbind(t)
	logs := captureLogs(t)
	require.NoError(t, SelectMemory())
	before := Current()

	var b *billy.Backend
	err := Set(b)
	require.True(t, errors.HasCode(err, errors.CodeBackendInit))
	require.True(t, before == Current())
	require.NotContains(t, logs.String(), "previous=memory")

	// The facade still serves calls after the rejected install.
	require.False(t, Exists("/nope"))
	require.NoError(t, before.WriteFile("/kept.txt", []byte("x")))
	require.True(t, IsFile("/kept.txt"))
}

func TestSelectMemoryInvalidCwdKeepsBinding(t *testing.T) {
	unbind(t)

	require.NoError(t, SelectMemory())
	before := Current()

	err := SelectMemory(billy.WithCwd("bad\x00dir"))
	require.True(t, errors.HasCode(err, errors.CodeBackendInit))
	require.True(t, before == Current())
}

func TestSetLoggerNilRestoresDiscard(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, log())
	require.False(t, log().Enabled(t.Context(), slog.LevelError))
}

package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithContext(t *testing.T) {
	err := New(CodeNotFound, "missing")
	err = WithContext(err, "path", "/a")
	err = WithContext(err, "backend", "memory")

	ctx := err.Context()
	require.Len(t, ctx, 2)
	require.Equal(t, "/a", ctx["path"])
	require.Equal(t, "memory", ctx["backend"])
	require.Equal(t, CodeNotFound, err.Code())
}

func TestWithContext_Nil(t *testing.T) {
	require.Nil(t, WithContext(nil, "k", "v"))
	require.Nil(t, WithContextMap(nil, map[string]interface{}{"k": "v"}))
}

func TestWithContext_StandardError(t *testing.T) {
	cause := stderrors.New("plain")
	err := WithContext(cause, "op", "stat")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, "plain", err.Message())
	require.Equal(t, cause, err.Unwrap())
	require.Equal(t, "stat", err.Context()["op"])
}

func TestWithContextMap_Overrides(t *testing.T) {
	err := WithContextMap(New(CodeIO, "failed"), map[string]interface{}{"op": "read", "path": "/a"})
	err = WithContextMap(err, map[string]interface{}{"op": "write"})

	require.Equal(t, "write", err.Context()["op"])
	require.Equal(t, "/a", err.Context()["path"])
	require.True(t, err.Classification().IsRetryable())
}

func TestContext_ReturnsCopy(t *testing.T) {
	err := WithContext(New(CodeIO, "failed"), "op", "read")

	ctx := err.Context()
	ctx["op"] = "tampered"

	require.Equal(t, "read", err.Context()["op"])
}

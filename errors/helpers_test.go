package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetCode(t *testing.T) {
	require.Equal(t, CodeUnknown, GetCode(nil))
	require.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	require.Equal(t, CodeConflict, GetCode(New(CodeConflict, "not empty")))

	// Through a fmt wrap.
	wrapped := fmt.Errorf("remove: %w", New(CodeConflict, "not empty"))
	require.Equal(t, CodeConflict, GetCode(wrapped))
}

func TestGetCode_Outermost(t *testing.T) {
	inner := New(CodeNotFound, "missing")
	outer := Wrap(inner, CodeIO, "read failed")

	require.Equal(t, CodeIO, GetCode(outer))
}

func TestHasCode(t *testing.T) {
	require.False(t, HasCode(nil, CodeUnknown))
	require.True(t, HasCode(New(CodeNotFound, "x"), CodeNotFound))
	require.False(t, HasCode(New(CodeNotFound, "x"), CodeIO))
}

func TestGetClassification(t *testing.T) {
	require.Equal(t, ClassificationPermanent, GetClassification(nil))
	require.Equal(t, ClassificationPermanent, GetClassification(stderrors.New("plain")))
	require.Equal(t, ClassificationRetryable, GetClassification(New(CodeIO, "x")))
}

func TestIsRetryable(t *testing.T) {
	require.True(t, IsRetryable(Wrap(stderrors.New("eagain"), CodeIO, "write failed")))
	require.False(t, IsRetryable(New(CodeBackendInit, "no cwd")))
	require.False(t, IsRetryable(nil))
}

func TestAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", Wrap(fs.ErrExist, CodeAlreadyExists, "exists"))

	var vfsErr VFSError
	require.True(t, As(err, &vfsErr))
	require.Equal(t, CodeAlreadyExists, vfsErr.Code())
	require.True(t, Is(err, fs.ErrExist))
}

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		name     string
		kind     core.Kind
		expected string
	}{
		{name: "Unknown", kind: core.KindUnknown, expected: "unknown"},
		{name: "Real", kind: core.KindReal, expected: "real"},
		{name: "Memory", kind: core.KindMemory, expected: "memory"},
		{name: "Invalid", kind: core.Kind(999), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want core.Kind
	}{
		{"real", core.KindReal},
		{"OS", core.KindReal},
		{"local", core.KindReal},
		{"memory", core.KindMemory},
		{" mem ", core.KindMemory},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := core.ParseKind(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseKind_Unknown(t *testing.T) {
	got, err := core.ParseKind("s3")
	require.Error(t, err)
	require.Equal(t, core.KindUnknown, got)
	require.True(t, errors.HasCode(err, errors.CodeBackendInit))
}

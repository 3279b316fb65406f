package core

import (
	"strings"

	"github.com/jmgilman/go/vfs/errors"
)

// Kind identifies which backend variant is in use.
type Kind int

const (
	// KindUnknown indicates the kind is unknown or unspecified.
	KindUnknown Kind = iota
	// KindReal indicates the operating-system filesystem.
	KindReal
	// KindMemory indicates the isolated in-memory filesystem.
	KindMemory
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// ParseKind maps a case-insensitive name to a Kind.
// "real", "os" and "local" select KindReal; "memory" and "mem" select KindMemory.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "real", "os", "local":
		return KindReal, nil
	case "memory", "mem":
		return KindMemory, nil
	default:
		return KindUnknown, errors.Newf(errors.CodeBackendInit, "unknown backend kind %q", s)
	}
}

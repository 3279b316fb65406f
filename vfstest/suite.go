package vfstest

import (
	"slices"
	"testing"

	"github.com/jmgilman/go/vfs/core"
	"github.com/jmgilman/go/vfs/errors"
)

// Config adjusts the conformance suite.
type Config struct {
	// SkipTests lists test names to skip, in "Group/Test" form
	// (e.g. "ManageBackend/RenameDir") or as a whole group.
	SkipTests []string
}

// TestSuite runs every conformance group against fresh backends.
// newBackend must return a new, empty backend on each call.
func TestSuite(t *testing.T, newBackend func() core.Backend) {
	TestSuiteWithConfig(t, newBackend, Config{})
}

// TestSuiteWithConfig runs every conformance group with the given configuration.
func TestSuiteWithConfig(t *testing.T, newBackend func() core.Backend, config Config) {
	groups := []struct {
		name string
		run  func(*testing.T, core.Backend, Config)
	}{
		{"ReadBackend", TestReadBackendWithConfig},
		{"WriteBackend", TestWriteBackendWithConfig},
		{"ManageBackend", TestManageBackendWithConfig},
		{"PathBackend", TestPathBackendWithConfig},
		{"MetadataBackend", TestMetadataBackendWithConfig},
		{"SymlinkBackend", TestSymlinkBackendWithConfig},
		{"StreamBackend", TestStreamBackendWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.skips(g.name) {
				t.Skip("Skipped by backend configuration")
			}
			g.run(t, newBackend(), config)
		})
	}
}

func (c Config) skips(name string) bool {
	return slices.Contains(c.SkipTests, name)
}

// subtest is one named case of a conformance group.
type subtest struct {
	name string
	fn   func(*testing.T, core.Backend)
}

// runGroup runs the cases of a group against b, honoring the skip list.
func runGroup(t *testing.T, group string, b core.Backend, config Config, tests []subtest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if config.skips(group + "/" + tt.name) {
				t.Skip("Skipped by backend configuration")
			}
			tt.fn(t, b)
		})
	}
}

// abs resolves path on b or fails the test.
func abs(t *testing.T, b core.Backend, path string) string {
	t.Helper()
	p, err := b.Abs(path)
	if err != nil {
		t.Fatalf("Abs(%q): %v", path, err)
	}
	return p
}

// mustWrite writes content to path on b or fails the test.
func mustWrite(t *testing.T, b core.Backend, path, content string) {
	t.Helper()
	if err := b.WriteFile(path, []byte(content)); err != nil {
		t.Fatalf("WriteFile(%q): %v", path, err)
	}
}

// mustMkdir creates path on b or fails the test.
func mustMkdir(t *testing.T, b core.Backend, path string) string {
	t.Helper()
	p, err := b.MkdirAll(path)
	if err != nil {
		t.Fatalf("MkdirAll(%q): %v", path, err)
	}
	return p
}

// wantCode fails the test unless err carries code.
func wantCode(t *testing.T, op string, err error, code errors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: got nil error, want %s", op, code)
	}
	if got := errors.GetCode(err); got != code {
		t.Fatalf("%s: got code %s, want %s (%v)", op, got, code, err)
	}
}

// Package core defines the contract every virtual filesystem backend
// satisfies, so that the global facade can dispatch to any of them without
// knowing which one is active.
//
// The contract is split into small interfaces in the style of io/fs:
//
//   - ReadBackend: Exists, Stat, ReadFile, ReadDir
//   - WriteBackend: WriteFile, MkdirAll, Mkfile
//   - ManageBackend: Remove, RemoveAll, Rename
//   - PathBackend: Abs, Cwd, Chdir
//
// Backend composes all four and adds Kind for introspection.
//
// Paths accepted by a backend may be relative; they are resolved against the
// backend's own working directory after "~" and "$VAR" expansion. Paths
// returned by a backend are always absolute and clean.
//
// Failures are reported with the codes from the errors package, so callers
// can tell a missing file apart from any other failure:
//
//	data, err := backend.ReadFile("settings.toml")
//	if errors.HasCode(err, errors.CodeNotFound) {
//	    data = defaults
//	}
package core

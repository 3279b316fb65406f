// Package vfs provides a process-wide virtual filesystem facade.
//
// Application code calls package-level functions such as ReadAll, WriteAll
// and MkdirP. Each call is dispatched to the backend bound to the global
// handle at the moment the call begins. The handle starts unbound and binds
// the real operating-system filesystem on first use; tests switch it to an
// isolated in-memory filesystem with Select:
//
//	if err := vfs.Select(core.KindMemory); err != nil {
//	    return err
//	}
//	if _, err := vfs.MkdirP("/app/conf"); err != nil {
//	    return err
//	}
//	err := vfs.WriteString("/app/conf/settings.toml", "debug = true\n")
//
// # Selection
//
// Select always builds a fresh backend, so re-selecting the memory backend
// discards everything written to the previous one. A failed selection leaves
// the current binding untouched. Set installs a backend built elsewhere,
// and Current returns the bound backend so that a multi-step operation can
// pin it across a concurrent switch.
//
// # Paths
//
// Relative paths resolve against the active backend's working directory,
// after "~" and $VAR expansion. Mash joins path segments and ConfigDir
// locates per-user configuration; both are pure with respect to the backend.
//
// # Errors
//
// Failures carry a code from the errors package. A missing file is reported
// as errors.CodeNotFound and can be told apart from every other failure:
//
//	data, err := vfs.ReadAll(path)
//	if errors.HasCode(err, errors.CodeNotFound) {
//	    data = defaults
//	}
package vfs

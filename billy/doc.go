// Package billy adapts go-billy filesystems to the core.Backend contract.
//
// Two constructors cover the closed set of backends:
//
//   - NewReal wraps osfs rooted at "/" and starts in the process working directory
//   - NewMemory wraps memfs and starts empty, in "/"
//
// Both resolve every path with pathutil.Abs against their own working
// directory before touching the engine, and both check parents and entry
// types up front so that they report the same error codes for the same
// situation. The engines differ in that respect: both silently create parent
// directories on write, and they disagree on what a stat below a regular
// file returns.
//
// memfs is not safe for concurrent use, so the memory backend serializes
// access with a read/write lock. The real backend relies on the operating
// system.
//
// # Usage
//
//	mem, err := billy.NewMemory(billy.WithCwd("/srv"))
//	if err != nil {
//	    return err
//	}
//	if err := mem.WriteFile("app.toml", data); err != nil {
//	    return err
//	}
//
//	disk, err := billy.NewReal()
//	if err != nil {
//	    return err
//	}
//
// # go-billy interop
//
// Unwrap exposes the underlying billy.Filesystem for libraries that speak
// go-billy directly. Access through Unwrap bypasses the memory backend's
// lock.
package billy

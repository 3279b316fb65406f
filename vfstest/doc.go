// Package vfstest provides a conformance suite for core.Backend
// implementations and helpers for testing code written against the global
// vfs facade.
//
// Backend implementations run the suite with a constructor that returns a
// fresh, empty backend:
//
//	func TestMemory(t *testing.T) {
//	    vfstest.TestSuite(t, func() core.Backend {
//	        b, err := billy.NewMemory()
//	        if err != nil {
//	            t.Fatal(err)
//	        }
//	        return b
//	    })
//	}
//
// The suite only uses relative paths, so a real backend can be confined to a
// temporary directory by setting its working directory.
//
// Application tests call Setup to swap the global facade to a fresh backend
// for the duration of the test. The backend is memory unless VFSTEST_BACKEND
// names another kind:
//
//	func TestSaveSettings(t *testing.T) {
//	    dir := vfstest.Setup(t)
//	    file := vfs.Mash(dir, "settings.toml")
//
//	    require.NoError(t, SaveSettings(file))
//	    vfstest.AssertReadAll(t, file, "debug = true\n")
//	}
//
// Setup mutates process-wide state, so tests that use it must not call
// t.Parallel.
package vfstest

// Package pathutil implements the path helpers shared by every backend:
// joining, cleaning, expansion and config-directory lookup.
//
// All functions are pure string operations on slash-separated paths except
// Expand and the config lookups, which read the environment. None of them
// touch a filesystem.
package pathutil

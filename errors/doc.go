// Package errors provides the error taxonomy shared by every virtual
// filesystem backend and by the global facade.
//
// Every failure surfaced by this module carries an ErrorCode so that callers
// can branch on the kind of failure rather than on message text:
//
//   - CodeNotFound: the target path is absent where existence was required
//   - CodeAlreadyExists: the target path exists where absence was required
//   - CodeInvalidPath: the path is empty, malformed, or has the wrong type
//     (e.g. reading a directory as a file)
//   - CodeConflict: the path is in a state that prevents the operation
//     (e.g. removing a non-empty directory)
//   - CodeIO: an opaque lower-level failure; the OS error is kept as the cause
//   - CodeBackendInit: a backend could not be constructed during selection
//
// Errors wrap their cause, so the standard library helpers keep working:
//
//	data, err := vfs.ReadAll("/etc/app.toml")
//	if errors.HasCode(err, errors.CodeNotFound) {
//	    // fall back to defaults
//	}
//	if stderrors.Is(err, fs.ErrNotExist) {
//	    // also true, the io/fs sentinel stays in the chain
//	}
//
// # Classification
//
// Codes carry a default classification. CodeIO is retryable since it usually
// reflects a transient OS condition; everything else is permanent. The module
// itself never retries, the classification only informs the caller's policy.
//
// # Context
//
// Backends attach the operation, path and backend kind as context metadata:
//
//	err = errors.WithContextMap(err, map[string]interface{}{
//	    "op":      "read",
//	    "path":    "/etc/app.toml",
//	    "backend": "memory",
//	})
package errors

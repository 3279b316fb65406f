package errors

import (
	"errors"
	"fmt"
)

// Wrap wraps an error with a code and message while preserving the original error.
//
// If err already is a VFSError its classification is kept, otherwise the
// default classification for code is used.
//
// Returns nil if err is nil.
//
// Example:
//
//	if err := bfs.MkdirAll(path, 0o755); err != nil {
//	    return errors.Wrap(err, errors.CodeIO, "failed to create directory")
//	}
func Wrap(err error, code ErrorCode, message string) VFSError {
	if err == nil {
		return nil
	}

	classification := getDefaultClassification(code)
	var vfsErr VFSError
	if errors.As(err, &vfsErr) {
		classification = vfsErr.Classification()
	}

	return &vfsError{
		code:           code,
		classification: classification,
		message:        message,
		cause:          err,
	}
}

// Wrapf wraps an error with a formatted message.
//
// Returns nil if err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) VFSError {
	if err == nil {
		return nil
	}

	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WrapWithContext wraps an error and attaches context metadata in one step.
// The context map is copied.
//
// Returns nil if err is nil.
func WrapWithContext(err error, code ErrorCode, message string, ctx map[string]interface{}) VFSError {
	wrapped := Wrap(err, code, message)
	if wrapped == nil {
		return nil
	}
	return WithContextMap(wrapped, ctx)
}

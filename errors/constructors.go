package errors

import "fmt"

// New creates a new VFSError with the given code and message.
//
// Example:
//
//	err := errors.New(errors.CodeInvalidPath, "path is empty")
func New(code ErrorCode, message string) VFSError {
	return &vfsError{
		code:           code,
		classification: getDefaultClassification(code),
		message:        message,
	}
}

// Newf creates a new VFSError with a formatted message.
//
// Example:
//
//	err := errors.Newf(errors.CodeBackendInit, "unknown backend kind %q", kind)
func Newf(code ErrorCode, format string, args ...interface{}) VFSError {
	return New(code, fmt.Sprintf(format, args...))
}

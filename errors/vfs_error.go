package errors

import "fmt"

// vfsError is the concrete implementation of VFSError.
// It is private to enforce construction through package functions.
type vfsError struct {
	code           ErrorCode
	classification ErrorClassification
	message        string
	context        map[string]interface{}
	cause          error
}

// Error returns "[CODE] message" or "[CODE] message: cause".
func (e *vfsError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.code, e.message)
}

// Code returns the error code.
func (e *vfsError) Code() ErrorCode {
	return e.code
}

// Classification returns the error classification.
func (e *vfsError) Classification() ErrorClassification {
	return e.classification
}

// Message returns the error message.
func (e *vfsError) Message() string {
	return e.message
}

// Context returns a copy of the context map, or nil.
func (e *vfsError) Context() map[string]interface{} {
	if e.context == nil {
		return nil
	}
	ctx := make(map[string]interface{}, len(e.context))
	for k, v := range e.context {
		ctx[k] = v
	}
	return ctx
}

// Unwrap returns the wrapped error.
func (e *vfsError) Unwrap() error {
	return e.cause
}

package errors

// VFSError extends the standard error interface with structured information.
//
// VFSError carries an error code for categorization, a classification for
// retry decisions, contextual metadata (operation, path, backend), and the
// wrapped cause for errors.Is and errors.As.
type VFSError interface {
	error

	// Code returns the error code identifying the type of error.
	Code() ErrorCode

	// Classification returns whether the error is retryable or permanent.
	Classification() ErrorClassification

	// Message returns the human-readable error message.
	Message() string

	// Context returns attached metadata as a read-only map.
	// Returns nil if no context has been attached.
	Context() map[string]interface{}

	// Unwrap returns the wrapped error, or nil.
	Unwrap() error
}

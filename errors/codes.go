package errors

// ErrorCode represents a specific error condition.
// Error codes are string-based for debuggability.
type ErrorCode string

const (
	// Path errors.

	// CodeNotFound indicates the target path does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeAlreadyExists indicates the target path exists and the operation requires it not to.
	CodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// CodeInvalidPath indicates an empty, malformed or backend-rejected path,
	// or a path whose type does not fit the operation.
	CodeInvalidPath ErrorCode = "INVALID_PATH"

	// CodeConflict indicates the path's current state prevents the operation.
	CodeConflict ErrorCode = "CONFLICT"

	// Backend errors.

	// CodeIO indicates a lower-level failure reported by the backend engine.
	CodeIO ErrorCode = "IO_ERROR"

	// CodeBackendInit indicates a backend could not be constructed.
	CodeBackendInit ErrorCode = "BACKEND_INIT_FAILED"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

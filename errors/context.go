package errors

import "errors"

// WithContext adds a single context field to an error.
// Returns a new VFSError; existing context fields are preserved.
//
// If err is not a VFSError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "path", "/etc/app.toml")
func WithContext(err error, key string, value interface{}) VFSError {
	return WithContextMap(err, map[string]interface{}{key: value})
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing fields with the same key.
//
// If err is not a VFSError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) VFSError {
	if err == nil {
		return nil
	}

	base := asVFSError(err)

	merged := make(map[string]interface{}, len(ctx))
	for k, v := range base.Context() {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}

	return &vfsError{
		code:           base.Code(),
		classification: base.Classification(),
		message:        base.Message(),
		context:        merged,
		cause:          base.Unwrap(),
	}
}

// asVFSError returns err as a VFSError, converting plain errors to CodeUnknown.
func asVFSError(err error) VFSError {
	var vfsErr VFSError
	if errors.As(err, &vfsErr) {
		return vfsErr
	}
	return &vfsError{
		code:           CodeUnknown,
		classification: ClassificationPermanent,
		message:        err.Error(),
		cause:          err,
	}
}

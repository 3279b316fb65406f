package billy

import (
	"io/fs"
	"syscall"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/go/vfs/errors"
)

// classifyError maps an engine error to the vfs error taxonomy.
// Errors that already carry a code pass through unchanged.
func classifyError(err error, message string) errors.VFSError {
	if err == nil {
		return nil
	}

	var vfsErr errors.VFSError
	if errors.As(err, &vfsErr) {
		return vfsErr
	}
	return errors.Wrap(err, codeOf(err), message)
}

// codeOf picks the taxonomy code for an uncoded engine error.
func codeOf(err error) errors.ErrorCode {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.CodeNotFound
	case errors.Is(err, syscall.ENOTEMPTY):
		// Checked before fs.ErrExist, which ENOTEMPTY also matches.
		return errors.CodeConflict
	case errors.Is(err, fs.ErrExist):
		return errors.CodeAlreadyExists
	case errors.Is(err, syscall.ENOTDIR),
		errors.Is(err, syscall.EISDIR),
		errors.Is(err, syscall.ENAMETOOLONG),
		errors.Is(err, syscall.ELOOP),
		errors.Is(err, fs.ErrInvalid),
		errors.Is(err, billy.ErrCrossedBoundary):
		return errors.CodeInvalidPath
	default:
		return errors.CodeIO
	}
}

// context is the error context every backend error carries.
func (b *Backend) context(op, path string) map[string]interface{} {
	return map[string]interface{}{
		"op":      op,
		"path":    path,
		"backend": b.kind.String(),
	}
}

// annotate attaches the operation, path and backend kind to err.
func (b *Backend) annotate(err error, op, path string) error {
	if err == nil {
		return nil
	}
	return errors.WithContextMap(err, b.context(op, path))
}

// fail classifies an engine error and annotates it.
func (b *Backend) fail(err error, op, path, message string) error {
	if err == nil {
		return nil
	}

	var vfsErr errors.VFSError
	if errors.As(err, &vfsErr) {
		return b.annotate(vfsErr, op, path)
	}
	return errors.WrapWithContext(err, codeOf(err), message, b.context(op, path))
}

// reject builds a new error with the given code and annotates it.
func (b *Backend) reject(code errors.ErrorCode, op, path, message string) error {
	return b.annotate(errors.New(code, message), op, path)
}

package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrAllocation indicates the content buffer could not be sized for a file.
	ErrAllocation = errors.New("buffer allocation failed")
)

// IOError is returned when a file system operation on a single entry fails.
type IOError struct {
	// Path is the path of the entry the operation was applied to.
	Path string
	// Op is the operation that failed, e.g. "open", "read", "readdir", "stat", "resolve".
	Op string
	// Err is the underlying error, without the *fs.PathError wrapper.
	Err error
}

// NewIOError builds an IOError, stripping a redundant *fs.PathError from err.
func NewIOError(op, path string, err error) *IOError {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		err = pathErr.Err
	}
	return &IOError{Path: path, Op: op, Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is maps the package sentinels onto the underlying fs errors.
func (e *IOError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return errors.Is(e.Err, fs.ErrNotExist)
	case ErrPermissionDenied:
		return errors.Is(e.Err, fs.ErrPermission)
	default:
		return false
	}
}

package fileops

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors, one per error kind. Match them with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrAlreadyLocked      = errors.New("already locked")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrUnsupportedPolicy  = errors.New("unsupported conflict policy")
)

// PathError records a failed operation, the path it failed on and the kind of failure.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	msg := e.Kind.Error()
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error. An already-locked error
// also matches ErrAlreadyExists, since the marker file is what already exists.
func (e *PathError) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	return e.Kind == ErrAlreadyLocked && target == ErrAlreadyExists
}

// KindOf returns the sentinel kind of err, or nil if err carries no kind.
func KindOf(err error) error {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	for _, kind := range []error{
		ErrInvalidArgument, ErrNotFound, ErrAlreadyLocked, ErrAlreadyExists,
		ErrPreconditionFailed, ErrUnsupportedPolicy,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindName returns a snake_case name for the kind of err, suitable for labels and
// machine-readable messages. Errors without a kind are named "error".
func KindName(err error) string {
	switch KindOf(err) {
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrNotFound:
		return "not_found"
	case ErrAlreadyExists:
		return "already_exists"
	case ErrAlreadyLocked:
		return "already_locked"
	case ErrPreconditionFailed:
		return "precondition_failed"
	case ErrUnsupportedPolicy:
		return "unsupported_policy"
	}
	return "error"
}

func newError(op, path string, kind error, format string, args ...any) error {
	return &PathError{Op: op, Path: path, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// wrapFSError classifies an error coming from the filesystem. Errors that are
// already classified pass through unchanged.
func wrapFSError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	if errors.As(err, &pe) {
		return err
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &PathError{Op: op, Path: path, Kind: ErrNotFound, Err: err}
	case errors.Is(err, fs.ErrExist):
		return &PathError{Op: op, Path: path, Kind: ErrAlreadyExists, Err: err}
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}

func requirePath(op, name, value string) error {
	if value == "" {
		return newError(op, "", ErrInvalidArgument, "%s cannot be empty", name)
	}
	return nil
}

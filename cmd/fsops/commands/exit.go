package commands

import (
	"errors"

	"fsops/pkg/fileops"
)

// ErrCancelled is returned when the user dismisses the conflict prompt.
var ErrCancelled = errors.New("cancelled by user")

// Process exit codes by error kind.
const (
	ExitFailure      = 1
	ExitUsage        = 2
	ExitPrecondition = 3
	ExitConflict     = 4
	ExitNotFound     = 5
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, fileops.ErrInvalidArgument), errors.Is(err, fileops.ErrUnsupportedPolicy):
		return ExitUsage
	case errors.Is(err, fileops.ErrPreconditionFailed):
		return ExitPrecondition
	case errors.Is(err, fileops.ErrAlreadyExists), errors.Is(err, fileops.ErrAlreadyLocked):
		return ExitConflict
	case errors.Is(err, fileops.ErrNotFound):
		return ExitNotFound
	}
	return ExitFailure
}

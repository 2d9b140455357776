package fileops

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// LockSuffix is appended to a target's full path to name its lock marker.
const LockSuffix = ".lock"

// LockHandle is a held advisory lock. The marker's existence is the lock.
type LockHandle struct {
	TargetPath string
	MarkerPath string

	locker *Locker
}

// Unlock removes the handle's marker.
func (h *LockHandle) Unlock() error {
	if h.locker == nil {
		return newError("unlock", h.TargetPath, ErrInvalidArgument, "handle is not bound to a locker")
	}
	return h.locker.Unlock(h.TargetPath)
}

// Locker implements the sentinel-file advisory lock: a path is locked while
// "<path>.lock" exists. Only callers that go through a Locker respect it; nothing
// stops a process from modifying the target directly.
type Locker struct {
	fs       afero.Fs
	observer Observer
}

// NewLocker returns a Locker over fsys.
func NewLocker(fsys afero.Fs) *Locker {
	return &Locker{fs: fsys, observer: nopObserver{}}
}

// MarkerPath returns the lock marker path for target.
func MarkerPath(target string) string {
	return target + LockSuffix
}

// Lock creates the marker for path. The target must exist. Creating the marker is
// exclusive, so when two callers race exactly one succeeds and the other gets
// ErrAlreadyLocked.
func (l *Locker) Lock(path string) (*LockHandle, error) {
	const op = "lock"
	if err := requirePath(op, "path", path); err != nil {
		return nil, err
	}
	if err := l.requireTarget(op, path); err != nil {
		l.observer.ObserveLock(op, err)
		return nil, err
	}

	marker := MarkerPath(path)
	f, err := l.fs.OpenFile(marker, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			err = newError(op, path, ErrAlreadyLocked, "lock marker %s already exists", marker)
		} else {
			err = wrapFSError(op, marker, err)
		}
		l.observer.ObserveLock(op, err)
		return nil, err
	}
	if err := f.Close(); err != nil {
		_ = l.fs.Remove(marker)
		err = wrapFSError(op, marker, err)
		l.observer.ObserveLock(op, err)
		return nil, err
	}

	l.observer.ObserveLock(op, nil)
	return &LockHandle{TargetPath: path, MarkerPath: marker, locker: l}, nil
}

// IsLocked reports whether the marker for path exists. The target must exist.
func (l *Locker) IsLocked(path string) (bool, error) {
	const op = "is locked"
	if err := requirePath(op, "path", path); err != nil {
		return false, err
	}
	if err := l.requireTarget(op, path); err != nil {
		return false, err
	}
	exists, err := entryExists(l.fs, MarkerPath(path))
	if err != nil {
		return false, wrapFSError(op, MarkerPath(path), err)
	}
	return exists, nil
}

// Unlock removes the marker for path. Unlocking a path that is not locked is a no-op.
func (l *Locker) Unlock(path string) error {
	const op = "unlock"
	if err := requirePath(op, "path", path); err != nil {
		return err
	}
	marker := MarkerPath(path)
	if err := l.fs.Remove(marker); err != nil && !errors.Is(err, fs.ErrNotExist) {
		err = wrapFSError(op, marker, err)
		l.observer.ObserveLock(op, err)
		return err
	}
	l.observer.ObserveLock(op, nil)
	return nil
}

func (l *Locker) requireTarget(op, path string) error {
	exists, err := entryExists(l.fs, path)
	if err != nil {
		return wrapFSError(op, path, err)
	}
	if !exists {
		return newError(op, path, ErrNotFound, "target does not exist")
	}
	return nil
}

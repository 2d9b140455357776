package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// AtomicCopy copies srcPath to destPath so that destPath either appears fully
// written or not at all.
//
// The data is written to a temporary file in the destination directory, synced,
// and renamed over destPath. The source's permission bits and modification time are
// carried over. An existing destPath is replaced; callers that must not replace use
// a Manager with a conflict policy instead.
//
// Usage example:
//
//	if err := fileops.AtomicCopy(afero.NewOsFs(), "/path/to/source.txt", "/path/to/dest.txt"); err != nil {
//	    log.Fatalf("Copy failed: %v", err)
//	}
func AtomicCopy(fsys afero.Fs, srcPath, destPath string) error {
	srcFile, err := fsys.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat source file: %w", err)
	}
	if info.IsDir() {
		return newError("copy", srcPath, ErrInvalidArgument, "source is a directory")
	}

	// Temp file lives beside the destination so the final rename stays on one filesystem
	tempPath := destPath + ".tmp" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	tempFile, err := fsys.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	// Closing again after Chtimes would reset the mtime on some filesystems
	var copySuccess, closed bool
	defer func() {
		if !closed {
			tempFile.Close()
		}
		if !copySuccess {
			fsys.Remove(tempPath)
		}
	}()

	if _, err := io.Copy(tempFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}

	closed = true
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := fsys.Chtimes(tempPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to preserve modification time: %w", err)
	}

	if err := fsys.Rename(tempPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	copySuccess = true
	return nil
}

// EnsureDirectoryExists creates path and any missing parents with 0755 permissions.
func EnsureDirectoryExists(fsys afero.Fs, path string) error {
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// copyNoReplace copies a regular file to a destination that must not exist.
func copyNoReplace(fsys afero.Fs, src, dst string) error {
	const op = "copy"
	info, err := fsys.Stat(src)
	if err != nil {
		return wrapFSError(op, src, err)
	}
	if info.IsDir() {
		return newError(op, src, ErrInvalidArgument, "source is a directory")
	}
	if err := refuseExisting(fsys, op, dst); err != nil {
		return err
	}
	if err := AtomicCopy(fsys, src, dst); err != nil {
		return wrapFSError(op, dst, err)
	}
	return nil
}

// moveNoReplace renames src to a destination that must not exist. A rename that
// crosses filesystems falls back to copy and remove for regular files.
func moveNoReplace(fsys afero.Fs, src, dst string) error {
	const op = "move"
	info, err := lstat(fsys, src)
	if err != nil {
		return wrapFSError(op, src, err)
	}
	if err := refuseExisting(fsys, op, dst); err != nil {
		return err
	}

	err = fsys.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) || !info.Mode().IsRegular() {
		return wrapFSError(op, src, err)
	}

	if err := AtomicCopy(fsys, src, dst); err != nil {
		return wrapFSError(op, dst, err)
	}
	if err := fsys.Remove(src); err != nil {
		return wrapFSError(op, src, fmt.Errorf("copied to %s but could not remove source: %w", dst, err))
	}
	return nil
}

func refuseExisting(fsys afero.Fs, op, dst string) error {
	exists, err := entryExists(fsys, dst)
	if err != nil {
		return wrapFSError(op, dst, err)
	}
	if exists {
		return newError(op, dst, ErrAlreadyExists, "destination already exists")
	}
	return nil
}

package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ExpandPath expands a path that starts with "~/" to the user's home directory.
// Other paths are returned unchanged.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/Documents/file.txt")
//	// Returns something like "/home/user/Documents/file.txt"
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ResolvePath expands "~/" and makes path absolute. It rejects empty input and
// paths containing NUL bytes.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", newError("resolve path", "", ErrInvalidArgument, "path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", newError("resolve path", path, ErrInvalidArgument, "path contains null bytes")
	}
	abs, err := filepath.Abs(ExpandPath(path))
	if err != nil {
		return "", fmt.Errorf("cannot resolve absolute path: %w", err)
	}
	return abs, nil
}

// SanitizeFilename reduces filename to its final path element. Names that resolve to
// "." or ".." are rejected; dots inside a name are kept.
func SanitizeFilename(filename string) (string, error) {
	const op = "sanitize filename"
	if filename == "" {
		return "", newError(op, "", ErrInvalidArgument, "filename cannot be empty")
	}

	clean := strings.TrimSpace(filepath.Base(filename))

	if clean == "" || clean == "." || clean == ".." || clean == string(filepath.Separator) {
		return "", newError(op, filename, ErrInvalidArgument, "invalid filename after sanitization")
	}
	if strings.ContainsRune(clean, '/') {
		return "", newError(op, filename, ErrInvalidArgument, "filename contains path separators")
	}
	return clean, nil
}

// DestinationPath returns where source lands when copied or moved to destination.
// A destination that is an existing directory, or ends in a path separator, receives
// the source's file name inside it; any other destination is returned unchanged.
func DestinationPath(fsys afero.Fs, source, destination string) (string, error) {
	intoDir := strings.HasSuffix(destination, string(filepath.Separator))
	if !intoDir {
		info, err := fsys.Stat(destination)
		intoDir = err == nil && info.IsDir()
	}
	if !intoDir {
		return destination, nil
	}

	name, err := SanitizeFilename(source)
	if err != nil {
		return "", err
	}
	return filepath.Join(destination, name), nil
}

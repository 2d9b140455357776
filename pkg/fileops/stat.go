package fileops

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// lstat stats path without following a final symlink when fsys supports it.
func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

// entryExists reports whether path names an entry. A dangling symlink exists.
func entryExists(fsys afero.Fs, path string) (bool, error) {
	_, err := lstat(fsys, path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

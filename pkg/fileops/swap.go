package fileops

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// SwapNames exchanges the names of two existing entries: afterwards the content that
// was at a is reachable at b and vice versa. Nothing is copied; the swap is three
// renames through a temporary name beside a:
//
//	a -> a.tmp<hex>
//	b -> a
//	a.tmp<hex> -> b
//
// Both entries must exist before anything is renamed. If the second rename fails the
// temporary entry is renamed back to a, leaving the filesystem as it was. No lock is
// held across the renames; another process touching a or b mid-swap can break it.
func SwapNames(fsys afero.Fs, a, b string) error {
	const op = "swap"
	if err := requirePath(op, "first path", a); err != nil {
		return err
	}
	if err := requirePath(op, "second path", b); err != nil {
		return err
	}
	for _, p := range []string{a, b} {
		exists, err := entryExists(fsys, p)
		if err != nil {
			return wrapFSError(op, p, err)
		}
		if !exists {
			return newError(op, p, ErrNotFound, "entry does not exist")
		}
	}
	if filepath.Clean(a) == filepath.Clean(b) {
		return nil
	}

	tmp := swapTempName(a)
	if err := fsys.Rename(a, tmp); err != nil {
		return wrapFSError(op, a, err)
	}

	if err := fsys.Rename(b, a); err != nil {
		swapErr := wrapFSError(op, b, err)
		if rbErr := fsys.Rename(tmp, a); rbErr != nil {
			return errors.Join(swapErr, fmt.Errorf("rollback failed, %s left at %s: %w", a, tmp, rbErr))
		}
		return swapErr
	}

	if err := fsys.Rename(tmp, b); err != nil {
		swapErr := wrapFSError(op, tmp, err)
		// b's content is at a and a's content is at tmp: undo both renames.
		if rbErr := fsys.Rename(a, b); rbErr != nil {
			return errors.Join(swapErr, rbErr)
		}
		if rbErr := fsys.Rename(tmp, a); rbErr != nil {
			return errors.Join(swapErr, rbErr)
		}
		return swapErr
	}

	return nil
}

func swapTempName(path string) string {
	return path + ".tmp" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

package fileops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicCopy(t *testing.T) {
	testFilesystems(t, func(t *testing.T, fsys afero.Fs, dir string) {
		t.Run("copies content", func(t *testing.T) {
			src := createTestFile(t, fsys, filepath.Join(dir, "basic", "src.txt"), "hello world")
			dst := filepath.Join(dir, "basic", "dst.txt")

			require.NoError(t, AtomicCopy(fsys, src, dst))
			assert.Equal(t, "hello world", readFileContent(t, fsys, dst))
			assert.Empty(t, leftoverTempFiles(t, fsys, filepath.Join(dir, "basic")))
		})

		t.Run("empty file", func(t *testing.T) {
			src := createTestFile(t, fsys, filepath.Join(dir, "empty", "src.txt"), "")
			dst := filepath.Join(dir, "empty", "dst.txt")

			require.NoError(t, AtomicCopy(fsys, src, dst))
			assert.Equal(t, int64(0), fileSize(t, fsys, dst))
		})

		t.Run("replaces an existing destination", func(t *testing.T) {
			src := createTestFile(t, fsys, filepath.Join(dir, "replace", "src.txt"), "new")
			dst := createTestFile(t, fsys, filepath.Join(dir, "replace", "dst.txt"), "old and longer")

			require.NoError(t, AtomicCopy(fsys, src, dst))
			assert.Equal(t, "new", readFileContent(t, fsys, dst))
		})

		t.Run("preserves modification time", func(t *testing.T) {
			mtime := time.Date(2023, 6, 1, 8, 30, 0, 0, time.UTC)
			src := createTestFile(t, fsys, filepath.Join(dir, "mtime", "src.txt"), "dated")
			setModTime(t, fsys, src, mtime)
			dst := filepath.Join(dir, "mtime", "dst.txt")

			require.NoError(t, AtomicCopy(fsys, src, dst))
			info, err := fsys.Stat(dst)
			require.NoError(t, err)
			assert.True(t, info.ModTime().Equal(mtime), "got %v", info.ModTime())
		})

		t.Run("missing source", func(t *testing.T) {
			err := AtomicCopy(fsys, filepath.Join(dir, "nope.txt"), filepath.Join(dir, "dst.txt"))
			require.Error(t, err)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})

		t.Run("directory source", func(t *testing.T) {
			require.NoError(t, fsys.MkdirAll(filepath.Join(dir, "srcdir"), 0o755))
			err := AtomicCopy(fsys, filepath.Join(dir, "srcdir"), filepath.Join(dir, "dstdir"))
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	})
}

func TestAtomicCopyPreservesPermissions(t *testing.T) {
	fsys, dir := osTestFs(t)
	src := createTestFile(t, fsys, filepath.Join(dir, "run.sh"), "#!/bin/sh\n")
	require.NoError(t, fsys.Chmod(src, 0o750))
	dst := filepath.Join(dir, "run-copy.sh")

	require.NoError(t, AtomicCopy(fsys, src, dst))
	info, err := fsys.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())
}

func TestAtomicCopyCleansUpOnFailure(t *testing.T) {
	base, dir := memTestFs(t)
	src := createTestFile(t, base, filepath.Join(dir, "src.txt"), "content")
	dst := filepath.Join(dir, "dst.txt")

	fsys := &renameHookFs{Fs: base, n: 1, failErr: os.ErrPermission}
	err := AtomicCopy(fsys, src, dst)
	require.Error(t, err)
	assert.False(t, fileExists(base, dst))
	assert.Empty(t, leftoverTempFiles(t, base, dir))
}

func TestEnsureDirectoryExists(t *testing.T) {
	fsys, dir := memTestFs(t)
	path := filepath.Join(dir, "a", "b", "c")

	require.NoError(t, EnsureDirectoryExists(fsys, path))
	info, err := fsys.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Existing directories are fine
	require.NoError(t, EnsureDirectoryExists(fsys, path))
}

func TestNoReplacePrimitives(t *testing.T) {
	testFilesystems(t, func(t *testing.T, fsys afero.Fs, dir string) {
		src := createTestFile(t, fsys, filepath.Join(dir, "src.txt"), "src")
		dst := createTestFile(t, fsys, filepath.Join(dir, "dst.txt"), "dst")

		assert.ErrorIs(t, copyNoReplace(fsys, src, dst), ErrAlreadyExists)
		assert.ErrorIs(t, moveNoReplace(fsys, src, dst), ErrAlreadyExists)
		assert.Equal(t, "dst", readFileContent(t, fsys, dst))
		assert.Equal(t, "src", readFileContent(t, fsys, src))
	})
}

func TestMoveNoReplaceDanglingSymlink(t *testing.T) {
	fsys, dir := osTestFs(t)
	src := createTestFile(t, fsys, filepath.Join(dir, "src.txt"), "src")
	dst := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), dst))

	err := moveNoReplace(fsys, src, dst)
	assert.ErrorIs(t, err, ErrAlreadyExists, "a dangling symlink still occupies the name")
}

package fileops

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferInto(t *testing.T) {
	testFilesystems(t, func(t *testing.T, fsys afero.Fs, dir string) {
		srcDir := filepath.Join(dir, "src")
		dstDir := filepath.Join(dir, "dst")
		require.NoError(t, fsys.MkdirAll(dstDir, 0o755))
		a := createTestFile(t, fsys, filepath.Join(srcDir, "a.md"), "A")
		b := createTestFile(t, fsys, filepath.Join(srcDir, "b.md"), "B")
		sources := []string{a, b}
		m := New(fsys)

		results, err := m.TransferInto(OpCopy, sources, dstDir, FailOnConflict)
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, src := range sources {
			assert.NoError(t, results[src].Err, src)
			assert.Equal(t, OutcomePerformed, results[src].Result.Outcome)
			assert.Equal(t, filepath.Join(dstDir, filepath.Base(src)), results[src].Result.ResolvedPath)
		}
		assert.Equal(t, "A", readFileContent(t, fsys, filepath.Join(dstDir, "a.md")))

		// Overwrite prevention
		results, err = m.TransferInto(OpCopy, sources, dstDir, FailOnConflict)
		require.NoError(t, err)
		for _, src := range sources {
			assert.ErrorIs(t, results[src].Err, ErrAlreadyExists, src)
		}

		// Policy applies per file
		results, err = m.TransferInto(OpMove, sources, dstDir, RenameWithNumber)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dstDir, "a (2).md"), results[a].Result.ResolvedPath)
		assert.Equal(t, filepath.Join(dstDir, "b (2).md"), results[b].Result.ResolvedPath)
		assert.False(t, fileExists(fsys, a))
	})
}

func TestTransferIntoPartialFailure(t *testing.T) {
	fsys, dir := memTestFs(t)
	dstDir := filepath.Join(dir, "dst")
	require.NoError(t, fsys.MkdirAll(dstDir, 0o755))
	good := createTestFile(t, fsys, filepath.Join(dir, "good.txt"), "ok")
	missing := filepath.Join(dir, "missing.txt")

	results, err := New(fsys).TransferInto(OpCopy, []string{missing, good}, dstDir, Overwrite)
	require.NoError(t, err)

	assert.ErrorIs(t, results[missing].Err, ErrNotFound)
	assert.NoError(t, results[good].Err)
	assert.Equal(t, "ok", readFileContent(t, fsys, filepath.Join(dstDir, "good.txt")))
}

func TestTransferIntoDirectoryErrors(t *testing.T) {
	fsys, dir := osTestFs(t)
	src := createTestFile(t, fsys, filepath.Join(dir, "a.txt"), "A")
	m := New(fsys)

	_, err := m.TransferInto(OpCopy, []string{src}, filepath.Join(dir, "nope"), FailOnConflict)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.TransferInto(OpCopy, []string{src}, src, FailOnConflict)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = m.TransferInto(OpCopy, nil, dir, FailOnConflict)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	results, err := New(fsys, WithCreateParents(true)).TransferInto(OpCopy, []string{src}, filepath.Join(dir, "new", "sub"), FailOnConflict)
	require.NoError(t, err)
	assert.NoError(t, results[src].Err)
	assert.True(t, fileExists(fsys, filepath.Join(dir, "new", "sub", "a.txt")))
}

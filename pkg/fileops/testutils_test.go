package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Test helpers

func createTestFile(t *testing.T, fsys afero.Fs, path, content string) string {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	return path
}

func createSizedFile(t *testing.T, fsys afero.Fs, path string, size int) string {
	t.Helper()
	return createTestFile(t, fsys, path, strings.Repeat("x", size))
}

func setModTime(t *testing.T, fsys afero.Fs, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, fsys.Chtimes(path, mtime, mtime))
}

func readFileContent(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func fileSize(t *testing.T, fsys afero.Fs, path string) int64 {
	t.Helper()
	info, err := fsys.Stat(path)
	require.NoError(t, err)
	return info.Size()
}

func fileExists(fsys afero.Fs, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// osTestFs returns the OS filesystem and a fresh directory on it. Tests that depend
// on real rename and exclusive-create semantics use it.
func osTestFs(t *testing.T) (afero.Fs, string) {
	t.Helper()
	return afero.NewOsFs(), t.TempDir()
}

// memTestFs returns an in-memory filesystem rooted at a fixed directory.
func memTestFs(t *testing.T) (afero.Fs, string) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	dir := filepath.Join(string(filepath.Separator), "work")
	require.NoError(t, fsys.MkdirAll(dir, 0o755))
	return fsys, dir
}

// testFilesystems runs fn against both an OS temp dir and an in-memory filesystem.
func testFilesystems(t *testing.T, fn func(t *testing.T, fsys afero.Fs, dir string)) {
	t.Run("os", func(t *testing.T) {
		fsys, dir := osTestFs(t)
		fn(t, fsys, dir)
	})
	t.Run("mem", func(t *testing.T) {
		fsys, dir := memTestFs(t)
		fn(t, fsys, dir)
	})
}

// leftoverTempFiles lists entries in dir that look like swap or copy temp files.
func leftoverTempFiles(t *testing.T, fsys afero.Fs, dir string) []string {
	t.Helper()
	entries, err := afero.ReadDir(fsys, dir)
	require.NoError(t, err)
	var leftovers []string
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			leftovers = append(leftovers, e.Name())
		}
	}
	return leftovers
}

// renameHookFs calls hook before the nth Rename.
type renameHookFs struct {
	afero.Fs
	n       int
	calls   int
	hook    func()
	failErr error
}

func (f *renameHookFs) Rename(oldname, newname string) error {
	f.calls++
	if f.calls == f.n {
		if f.hook != nil {
			f.hook()
		}
		if f.failErr != nil {
			return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: f.failErr}
		}
	}
	return f.Fs.Rename(oldname, newname)
}

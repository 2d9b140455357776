package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "docs", "a.txt"), ExpandPath("~/docs/a.txt"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "~user/x", ExpandPath("~user/x"))
}

func TestResolvePath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolvePath("rel/file.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "rel", "file.txt"), got)

	got, err = ResolvePath("/a/../b")
	require.NoError(t, err)
	assert.Equal(t, "/b", got)

	_, err = ResolvePath("   ")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ResolvePath("bad\x00path")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"report.pdf", "report.pdf", false},
		{"/abs/dir/report.pdf", "report.pdf", false},
		{"  spaced.txt ", "spaced.txt", false},
		{"a..b.txt", "a..b.txt", false},
		{"/in/report..v2.txt", "report..v2.txt", false},
		{"", "", true},
		{"..", "", true},
		{"/", "", true},
		{"dir/..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := SanitizeFilename(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDestinationPath(t *testing.T) {
	fsys, dir := memTestFs(t)
	require.NoError(t, fsys.MkdirAll(filepath.Join(dir, "backup"), 0o755))
	src := filepath.Join(dir, "in", "notes.txt")

	tests := []struct {
		name string
		dst  string
		want string
	}{
		{"existing directory", filepath.Join(dir, "backup"), filepath.Join(dir, "backup", "notes.txt")},
		{"trailing separator", filepath.Join(dir, "new") + "/", filepath.Join(dir, "new", "notes.txt")},
		{"file path", filepath.Join(dir, "backup", "renamed.txt"), filepath.Join(dir, "backup", "renamed.txt")},
	}

	dotted := filepath.Join(dir, "in", "report..v2.txt")
	got, err := DestinationPath(fsys, dotted, filepath.Join(dir, "backup"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backup", "report..v2.txt"), got)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DestinationPath(fsys, src, tt.dst)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = DestinationPath(afero.NewMemMapFs(), "", "/")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

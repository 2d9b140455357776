package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// ScanOptions configures Scan.
type ScanOptions struct {
	// MaxDepth limits recursion. The scan root is depth 1; zero or less means unlimited.
	MaxDepth int

	// IncludeHidden includes files and directories whose names start with '.'.
	IncludeHidden bool

	// SkipPatterns lists directory names (not paths) that are never entered.
	SkipPatterns []string

	// FileFilter, when set, keeps only files for which it returns true.
	FileFilter func(name string) bool

	// SkipUnreadableDirs skips directories that cannot be read instead of failing.
	SkipUnreadableDirs bool
}

// FileInfo describes a file found by Scan.
type FileInfo struct {
	// Name is the base filename
	Name string

	// Path is relative to the scan root
	Path string

	Size    int64
	ModTime time.Time
	Mode    os.FileMode
}

// ScanStats summarizes a scan.
type ScanStats struct {
	TotalFiles  int
	LargestFile int64
	TotalSize   int64
}

// DefaultScanOptions returns options that include everything, hidden files included,
// with no depth limit.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{IncludeHidden: true, SkipUnreadableDirs: true}
}

// Scan walks root on fsys and returns the regular files it finds, sorted by path.
// Symlinked directories are not followed, so link loops cannot recurse.
func Scan(fsys afero.Fs, root string, opts ScanOptions) ([]FileInfo, error) {
	const op = "scan"
	if err := requirePath(op, "root", root); err != nil {
		return nil, err
	}
	info, err := lstat(fsys, root)
	if err != nil {
		return nil, wrapFSError(op, root, err)
	}
	if !info.IsDir() {
		return nil, newError(op, root, ErrInvalidArgument, "not a directory")
	}

	s := &scanner{fs: fsys, root: root, opts: opts}
	if err := s.walk(".", 1); err != nil {
		return nil, err
	}
	slices.SortFunc(s.results, func(a, b FileInfo) int { return strings.Compare(a.Path, b.Path) })
	return s.results, nil
}

type scanner struct {
	fs      afero.Fs
	root    string
	opts    ScanOptions
	results []FileInfo
}

func (s *scanner) walk(rel string, depth int) error {
	if s.opts.MaxDepth > 0 && depth > s.opts.MaxDepth {
		return nil
	}

	dir := filepath.Join(s.root, rel)
	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		if s.opts.SkipUnreadableDirs {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !s.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		entryRel := filepath.Join(rel, name)

		// ReadDir follows symlinks; re-stat without following to avoid loops
		info, err := lstat(s.fs, filepath.Join(s.root, entryRel))
		if err != nil {
			if s.opts.SkipUnreadableDirs {
				continue
			}
			return wrapFSError("scan", entryRel, err)
		}

		switch {
		case info.IsDir():
			if slices.Contains(s.opts.SkipPatterns, name) {
				continue
			}
			if err := s.walk(entryRel, depth+1); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if s.opts.FileFilter != nil && !s.opts.FileFilter(name) {
				continue
			}
			s.results = append(s.results, FileInfo{
				Name:    name,
				Path:    entryRel,
				Size:    info.Size(),
				ModTime: info.ModTime(),
				Mode:    info.Mode(),
			})
		}
	}
	return nil
}

// Stats summarizes a list of scanned files.
func Stats(files []FileInfo) ScanStats {
	var stats ScanStats
	for _, f := range files {
		stats.TotalFiles++
		stats.TotalSize += f.Size
		if f.Size > stats.LargestFile {
			stats.LargestFile = f.Size
		}
	}
	return stats
}

// DirectorySize returns the total size in bytes of all regular files under root.
func DirectorySize(fsys afero.Fs, root string) (int64, error) {
	files, err := Scan(fsys, root, DefaultScanOptions())
	if err != nil {
		return 0, err
	}
	return Stats(files).TotalSize, nil
}

// ListFiles scans root on the manager's filesystem.
func (m *Manager) ListFiles(root string, opts ScanOptions) ([]FileInfo, error) {
	return Scan(m.fs, root, opts)
}

// DirectorySize returns the total size of regular files under root on the manager's filesystem.
func (m *Manager) DirectorySize(root string) (int64, error) {
	return DirectorySize(m.fs, root)
}

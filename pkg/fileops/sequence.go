package fileops

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// numberSuffix matches a stem ending in " (N)". The space is required: "Test(1)"
// carries no suffix.
var numberSuffix = regexp.MustCompile(`^(.*) \((\d+)\)$`)

// nameCandidate generates "base (N)ext" names for one directory.
type nameCandidate struct {
	dir  string
	base string
	ext  string
	next int
}

func newNameCandidate(path string) *nameCandidate {
	dir, file := filepath.Split(path)
	ext := filepath.Ext(file)
	stem := strings.TrimSuffix(file, ext)

	c := &nameCandidate{dir: dir, base: stem, ext: ext, next: 2}
	if m := numberSuffix.FindStringSubmatch(stem); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil && n < int(^uint(0)>>1) {
			c.base = m[1]
			c.next = n + 1
		}
	}
	return c
}

func (c *nameCandidate) advance() string {
	name := fmt.Sprintf("%s (%d)%s", c.base, c.next, c.ext)
	c.next++
	return c.dir + name
}

// NextAvailableName returns the first path in the sequence "name.ext",
// "name (2).ext", "name (3).ext", ... that does not exist on fsys.
//
// A path that does not exist is returned unchanged. When the name already ends in
// " (N)" the search continues at N+1, so "Test (2).txt" tries "Test (3).txt" next.
// The search has no upper bound.
func NextAvailableName(fsys afero.Fs, path string) (string, error) {
	const op = "next available name"
	if err := requirePath(op, "path", path); err != nil {
		return "", err
	}

	exists, err := entryExists(fsys, path)
	if err != nil {
		return "", wrapFSError(op, path, err)
	}
	if !exists {
		return path, nil
	}

	candidates := newNameCandidate(path)
	for {
		candidate := candidates.advance()
		exists, err := entryExists(fsys, candidate)
		if err != nil {
			return "", wrapFSError(op, candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
}

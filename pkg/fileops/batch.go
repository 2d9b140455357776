package fileops

import (
	"path/filepath"
)

// BatchResult is the outcome of one source in TransferInto.
type BatchResult struct {
	Result OperationResult
	Err    error
}

// TransferInto moves or copies each source into dir, keeping its file name, with the
// given policy applied to each one independently. Every source is attempted; a failed
// source does not stop the rest. The map is keyed by source path.
//
// The returned error is set only when dir itself is unusable, in which case nothing
// was transferred.
func (m *Manager) TransferInto(op Operation, sources []string, dir string, policy ConflictPolicy) (map[string]BatchResult, error) {
	const name = "transfer into"
	if err := requirePath(name, "destination directory", dir); err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, newError(name, dir, ErrInvalidArgument, "no source paths given")
	}

	if m.createParents {
		if err := EnsureDirectoryExists(m.fs, dir); err != nil {
			return nil, wrapFSError(name, dir, err)
		}
	}
	info, err := m.fs.Stat(dir)
	if err != nil {
		return nil, wrapFSError(name, dir, err)
	}
	if !info.IsDir() {
		return nil, newError(name, dir, ErrInvalidArgument, "destination is not a directory")
	}

	results := make(map[string]BatchResult, len(sources))
	for _, src := range sources {
		base, err := SanitizeFilename(src)
		if err != nil {
			results[src] = BatchResult{Err: err}
			continue
		}
		res, err := m.Execute(OperationRequest{
			Op:          op,
			Source:      src,
			Destination: filepath.Join(dir, base),
			Policy:      policy,
		})
		results[src] = BatchResult{Result: res, Err: err}
	}
	return results, nil
}

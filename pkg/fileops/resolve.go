package fileops

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// transferFunc moves or copies src to dst, refusing to replace an existing dst.
type transferFunc func(fsys afero.Fs, src, dst string) error

// resolver applies one conflict policy. The interface is sealed: the six variants
// below are the only implementations.
type resolver interface {
	resolve(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error)
}

type (
	failResolver    struct{}
	skipResolver    struct{}
	replaceResolver struct{}
	renameResolver  struct{}
	largerResolver  struct{}
	newerResolver   struct{}
)

// resolverFor maps a policy to its resolver.
func resolverFor(p ConflictPolicy) (resolver, error) {
	switch p {
	case FailOnConflict:
		return failResolver{}, nil
	case SkipOnConflict:
		return skipResolver{}, nil
	case Overwrite:
		return replaceResolver{}, nil
	case RenameWithNumber:
		return renameResolver{}, nil
	case OverwriteIfSourceLarger:
		return largerResolver{}, nil
	case OverwriteIfSourceNewer:
		return newerResolver{}, nil
	}
	return nil, newError("resolve", "", ErrUnsupportedPolicy, "no resolver for conflict policy %d", int(p))
}

func performed(dst string) OperationResult {
	return OperationResult{ResolvedPath: dst, Outcome: OutcomePerformed}
}

func transferTo(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error) {
	if err := transfer(fsys, src, dst); err != nil {
		return OperationResult{}, err
	}
	return performed(dst), nil
}

// replace removes dst and transfers src into its place. Callers must have decided
// to replace before calling.
func replace(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error) {
	if filepath.Clean(src) == filepath.Clean(dst) {
		return OperationResult{}, newError("overwrite", dst, ErrInvalidArgument, "source and destination are the same entry")
	}
	if err := fsys.Remove(dst); err != nil {
		return OperationResult{}, wrapFSError("overwrite", dst, err)
	}
	return transferTo(fsys, transfer, src, dst)
}

func (failResolver) resolve(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error) {
	// The no-replace primitive reports the conflict itself.
	return transferTo(fsys, transfer, src, dst)
}

func (skipResolver) resolve(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error) {
	exists, err := entryExists(fsys, dst)
	if err != nil {
		return OperationResult{}, wrapFSError("skip", dst, err)
	}
	if exists {
		return OperationResult{ResolvedPath: dst, Outcome: OutcomeSkipped}, nil
	}
	return transferTo(fsys, transfer, src, dst)
}

func (replaceResolver) resolve(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error) {
	exists, err := entryExists(fsys, dst)
	if err != nil {
		return OperationResult{}, wrapFSError("overwrite", dst, err)
	}
	if !exists {
		return transferTo(fsys, transfer, src, dst)
	}
	// Without a source there is nothing to replace with; keep the destination.
	if err := requireSource(fsys, "overwrite", src); err != nil {
		return OperationResult{}, err
	}
	return replace(fsys, transfer, src, dst)
}

func (renameResolver) resolve(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error) {
	target, err := NextAvailableName(fsys, dst)
	if err != nil {
		return OperationResult{}, err
	}
	return transferTo(fsys, transfer, src, target)
}

func (largerResolver) resolve(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error) {
	const op = "overwrite if larger"
	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return OperationResult{}, wrapFSError(op, src, err)
	}

	// A dangling symlink is an existing entry and is compared by its own metadata
	dstSize := int64(-1)
	dstInfo, err := lstat(fsys, dst)
	switch {
	case err == nil:
		dstSize = dstInfo.Size()
	case !isNotExist(err):
		return OperationResult{}, wrapFSError(op, dst, err)
	}

	if dstSize < 0 {
		return transferTo(fsys, transfer, src, dst)
	}
	if srcInfo.Size() <= dstSize {
		return OperationResult{}, newError(op, dst, ErrPreconditionFailed,
			"destination file exists and source (%d bytes) is not larger than destination (%d bytes)",
			srcInfo.Size(), dstSize)
	}
	return replace(fsys, transfer, src, dst)
}

func (newerResolver) resolve(fsys afero.Fs, transfer transferFunc, src, dst string) (OperationResult, error) {
	const op = "overwrite if newer"
	srcInfo, err := fsys.Stat(src)
	if err != nil {
		return OperationResult{}, wrapFSError(op, src, err)
	}

	dstInfo, err := lstat(fsys, dst)
	if err != nil {
		if isNotExist(err) {
			return transferTo(fsys, transfer, src, dst)
		}
		return OperationResult{}, wrapFSError(op, dst, err)
	}

	if !srcInfo.ModTime().After(dstInfo.ModTime()) {
		return OperationResult{}, newError(op, dst, ErrPreconditionFailed,
			"destination file exists and source (%s) is not newer than destination (%s)",
			srcInfo.ModTime().Format(timeLayout), dstInfo.ModTime().Format(timeLayout))
	}
	return replace(fsys, transfer, src, dst)
}

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func requireSource(fsys afero.Fs, op, src string) error {
	exists, err := entryExists(fsys, src)
	if err != nil {
		return wrapFSError(op, src, err)
	}
	if !exists {
		return newError(op, src, ErrNotFound, "source does not exist")
	}
	return nil
}

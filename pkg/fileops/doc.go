// Package fileops moves and copies files under a conflict policy, and provides the
// primitives those operations build on.
//
// # Conflict policies
//
// A move or copy whose destination already exists is resolved by one of six policies:
//
//   - FailOnConflict: return ErrAlreadyExists (the default)
//   - SkipOnConflict: leave the destination alone and report it as the result
//   - Overwrite: remove the destination, then transfer
//   - RenameWithNumber: transfer to the next free "name (N).ext"
//   - OverwriteIfSourceLarger: replace only if the source has more bytes, else ErrPreconditionFailed
//   - OverwriteIfSourceNewer: replace only if the source was modified later, else ErrPreconditionFailed
//
// Move and copy share the same policies; only the transfer primitive differs. Both
// primitives refuse to replace an existing entry, and copies are written through a
// temporary file so a failed copy never leaves a partial destination.
//
//	m := fileops.New(afero.NewOsFs(), fileops.WithDefaultPolicy(fileops.RenameWithNumber))
//	res, err := m.Copy("/data/report.pdf", "/backup/report.pdf")
//	if err != nil {
//	    return fmt.Errorf("copy report: %w", err)
//	}
//	fmt.Println(res.ResolvedPath) // "/backup/report (2).pdf" if report.pdf existed
//
// # Errors
//
// Every error carries a kind matched with errors.Is: ErrInvalidArgument, ErrNotFound,
// ErrAlreadyExists, ErrAlreadyLocked, ErrPreconditionFailed or ErrUnsupportedPolicy.
//
// # Races
//
// Policies check the destination and then act on it; another process changing the
// destination in between is not detected. SwapNames performs three renames without
// holding a lock. The only atomic primitive used is exclusive file creation, in Locker.
package fileops

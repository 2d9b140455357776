package fileops

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Manager is the entry point for move and copy with conflict policies. It holds no
// mutable state after construction and is safe for concurrent use; every call is
// independent given its paths.
type Manager struct {
	fs            afero.Fs
	policy        ConflictPolicy
	createParents bool
	logger        *log.Logger
	observer      Observer
	locker        *Locker
}

// Option configures a Manager.
type Option func(*Manager)

// WithDefaultPolicy sets the policy used by Move and Copy. The default is FailOnConflict.
func WithDefaultPolicy(p ConflictPolicy) Option {
	return func(m *Manager) { m.policy = p }
}

// WithCreateParents makes transfers create the destination's parent directory.
func WithCreateParents(enabled bool) Option {
	return func(m *Manager) { m.createParents = enabled }
}

// WithLogger sets the logger conflict decisions are reported to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithObserver registers an observer for operation and lock results.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}

// New returns a Manager over fsys. A nil fsys means the OS filesystem.
func New(fsys afero.Fs, opts ...Option) *Manager {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	m := &Manager{
		fs:       fsys,
		policy:   FailOnConflict,
		logger:   log.New(io.Discard),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.locker = &Locker{fs: fsys, observer: m.observer}
	return m
}

// Fs returns the filesystem the manager operates on.
func (m *Manager) Fs() afero.Fs {
	return m.fs
}

// DefaultPolicy returns the policy used by Move and Copy.
func (m *Manager) DefaultPolicy() ConflictPolicy {
	return m.policy
}

// Move moves source to destination under the default policy.
func (m *Manager) Move(source, destination string) (OperationResult, error) {
	return m.MoveWithPolicy(source, destination, m.policy)
}

// Copy copies source to destination under the default policy.
func (m *Manager) Copy(source, destination string) (OperationResult, error) {
	return m.CopyWithPolicy(source, destination, m.policy)
}

// MoveWithPolicy moves source to destination, resolving an existing destination with policy.
func (m *Manager) MoveWithPolicy(source, destination string, policy ConflictPolicy) (OperationResult, error) {
	return m.Execute(OperationRequest{Op: OpMove, Source: source, Destination: destination, Policy: policy})
}

// CopyWithPolicy copies source to destination, resolving an existing destination with policy.
func (m *Manager) CopyWithPolicy(source, destination string, policy ConflictPolicy) (OperationResult, error) {
	return m.Execute(OperationRequest{Op: OpCopy, Source: source, Destination: destination, Policy: policy})
}

// Execute runs a request. Exactly one of three things happens: the transfer is
// performed, it is skipped (SkipOnConflict only), or an error is returned.
func (m *Manager) Execute(req OperationRequest) (OperationResult, error) {
	start := time.Now()
	result, err := m.execute(req)
	m.observer.ObserveOperation(req.Op, req.Policy, result, err, time.Since(start))

	if err != nil {
		m.logger.Debug("operation failed",
			"op", req.Op, "policy", req.Policy,
			"source", req.Source, "destination", req.Destination,
			"error", err)
		return OperationResult{}, err
	}
	m.logger.Debug("operation completed",
		"op", req.Op, "policy", req.Policy,
		"source", req.Source, "resolved", result.ResolvedPath,
		"outcome", result.Outcome, "duration", time.Since(start))
	return result, nil
}

func (m *Manager) execute(req OperationRequest) (OperationResult, error) {
	op := req.Op.String()
	if err := requirePath(op, "source path", req.Source); err != nil {
		return OperationResult{}, err
	}
	if err := requirePath(op, "destination path", req.Destination); err != nil {
		return OperationResult{}, err
	}

	var transfer transferFunc
	switch req.Op {
	case OpMove:
		transfer = moveNoReplace
	case OpCopy:
		transfer = copyNoReplace
	default:
		return OperationResult{}, newError(op, req.Source, ErrInvalidArgument, "unknown operation %d", int(req.Op))
	}

	r, err := resolverFor(req.Policy)
	if err != nil {
		return OperationResult{}, err
	}

	if m.createParents {
		if err := EnsureDirectoryExists(m.fs, filepath.Dir(req.Destination)); err != nil {
			return OperationResult{}, wrapFSError(op, req.Destination, err)
		}
	}

	return r.resolve(m.fs, transfer, req.Source, req.Destination)
}

// FirstExisting returns the first candidate that exists, checked in order.
func (m *Manager) FirstExisting(candidates ...string) (string, error) {
	const op = "first existing"
	if len(candidates) == 0 {
		return "", newError(op, "", ErrInvalidArgument, "no candidate paths given")
	}
	for _, c := range candidates {
		if err := requirePath(op, "candidate path", c); err != nil {
			return "", err
		}
		exists, err := entryExists(m.fs, c)
		if err != nil {
			return "", wrapFSError(op, c, err)
		}
		if exists {
			return c, nil
		}
	}
	return "", newError(op, "", ErrNotFound, "none of %d candidate paths exist", len(candidates))
}

// NextAvailableName returns the first free "name (N).ext" for path on the manager's filesystem.
func (m *Manager) NextAvailableName(path string) (string, error) {
	return NextAvailableName(m.fs, path)
}

// Swap exchanges the names of a and b on the manager's filesystem.
func (m *Manager) Swap(a, b string) error {
	if err := SwapNames(m.fs, a, b); err != nil {
		m.logger.Debug("swap failed", "first", a, "second", b, "error", err)
		return err
	}
	m.logger.Debug("swapped names", "first", a, "second", b)
	return nil
}

// Locker returns the advisory locker bound to the manager's filesystem and observer.
func (m *Manager) Locker() *Locker {
	return m.locker
}

package fileops

import "time"

// Observer receives the result of every move, copy and lock call made through a
// Manager. err is nil on success.
type Observer interface {
	ObserveOperation(op Operation, policy ConflictPolicy, result OperationResult, err error, elapsed time.Duration)
	ObserveLock(action string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(Operation, ConflictPolicy, OperationResult, error, time.Duration) {
}

func (nopObserver) ObserveLock(string, error) {}

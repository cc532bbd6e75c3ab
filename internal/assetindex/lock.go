package assetindex

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFile is the run lock name under the mirror root.
const LockFile = ".assetsync.lock"

// ErrLocked reports that another process holds the mirror lock.
var ErrLocked = errors.New("another assetsync run is using this mirror")

// RunLock is an exclusive hold on a mirror root.
type RunLock struct {
	path string
	lock *flock.Flock
}

// Lock acquires the mirror lock for root without blocking.
func Lock(root string) (*RunLock, error) {
	path := filepath.Join(root, LockFile)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return &RunLock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release drops the lock. It is safe to call more than once.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

// Package filelock keeps two mdtree processes from writing into the same
// output directory at once.
package filelock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the lock
var ErrLocked = errors.New("output directory is locked by another process")

// FileLock wraps a flock file lock for coordinating access to an output tree.
type FileLock struct {
	flock  *flock.Flock
	path   string
	target string
}

// NewFileLock creates a new file lock at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// ForOutput returns the lock guarding outputRoot. Lock files live in lockDir
// rather than the output tree so they never show up among generated documents.
func ForOutput(lockDir, outputRoot string) (*FileLock, error) {
	abs, err := filepath.Abs(outputRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", outputRoot, err)
	}
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory %s: %w", lockDir, err)
	}

	sum := sha256.Sum256([]byte(abs))
	fl := NewFileLock(filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock"))
	fl.target = abs
	return fl, nil
}

// Path returns the lock file path
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock attempts to acquire an exclusive lock without blocking.
// Returns true if the lock was acquired, false if another process holds it.
func (fl *FileLock) TryLock() (bool, error) {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	return acquired, nil
}

// Acquire takes the lock without blocking and fails with ErrLocked when busy
func (fl *FileLock) Acquire() error {
	ok, err := fl.TryLock()
	if err != nil {
		return err
	}
	if !ok {
		if fl.target != "" {
			return fmt.Errorf("%w: %s", ErrLocked, fl.target)
		}
		return ErrLocked
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

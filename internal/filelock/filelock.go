// Package filelock provides an advisory, cross-process exclusive lock on a
// sidecar file. It serializes load/mutate/save cycles of cooperating
// processes; it does not stop other programs from editing the store.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrTimeout is returned when the lock could not be acquired in time.
var ErrTimeout = errors.New("timed out waiting for lock")

const retryInterval = 25 * time.Millisecond

// Lock is a held lock. Release it with Unlock.
type Lock struct {
	file *os.File
	path string
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes an exclusive lock on path, polling until ctx is done.
// The lock file (and its directory) is created when missing and left in
// place afterwards.
func Acquire(ctx context.Context, path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()
	for {
		err := lockFileExclusiveNonBlocking(file)
		if err == nil {
			return &Lock{file: file, path: path}, nil
		}
		if !isWouldBlockError(err) {
			_ = file.Close()
			return nil, fmt.Errorf("lock %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			_ = file.Close()
			return nil, fmt.Errorf("%w: %s", ErrTimeout, path)
		case <-ticker.C:
		}
	}
}

// Unlock releases the lock. It is safe to call more than once.
func (l *Lock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := unlockFile(l.file)
	if cerr := l.file.Close(); err == nil {
		err = cerr
	}
	l.file = nil
	return err
}

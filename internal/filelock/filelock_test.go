package filelock

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func acquireWithin(t *testing.T, path string, timeout time.Duration) (*Lock, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return Acquire(ctx, path)
}

func TestAcquireCreatesLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "projects.json.lock")

	lock, err := acquireWithin(t, path, time.Second)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if lock.Path() != path {
		t.Fatalf("Path() = %q, want %q", lock.Path(), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("second Unlock: %v", err)
	}
}

func TestSecondAcquireTimesOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.lock")

	held, err := acquireWithin(t, path, time.Second)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	start := time.Now()
	_, err = acquireWithin(t, path, 60*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Fatal("second acquire returned before the timeout")
	}

	if err := held.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	again, err := acquireWithin(t, path, time.Second)
	if err != nil {
		t.Fatalf("acquire after unlock: %v", err)
	}
	_ = again.Unlock()
}

func TestAcquireWaitsForRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.lock")
	held, err := acquireWithin(t, path, time.Second)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = held.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	lock, err := Acquire(ctx, path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	_ = lock.Unlock()
}

func TestNilLockUnlock(t *testing.T) {
	var l *Lock
	if err := l.Unlock(); err != nil {
		t.Fatalf("nil Unlock: %v", err)
	}
}

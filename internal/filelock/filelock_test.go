package filelock

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestForOutputPath(t *testing.T) {
	lockDir := filepath.Join(t.TempDir(), "locks")

	a, err := ForOutput(lockDir, "/tmp/out-a")
	if err != nil {
		t.Fatalf("ForOutput() error = %v", err)
	}
	again, err := ForOutput(lockDir, "/tmp/out-a/")
	if err != nil {
		t.Fatalf("ForOutput() error = %v", err)
	}
	b, err := ForOutput(lockDir, "/tmp/out-b")
	if err != nil {
		t.Fatalf("ForOutput() error = %v", err)
	}

	if a.Path() != again.Path() {
		t.Errorf("same output should share a lock: %s vs %s", a.Path(), again.Path())
	}
	if a.Path() == b.Path() {
		t.Error("different outputs should not share a lock")
	}
	if filepath.Dir(a.Path()) != lockDir {
		t.Errorf("lock %s not in %s", a.Path(), lockDir)
	}
	if !strings.HasSuffix(a.Path(), ".lock") {
		t.Errorf("unexpected lock name %s", a.Path())
	}
}

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.Acquire(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestAcquireWhileHeld(t *testing.T) {
	lockDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")

	first, err := ForOutput(lockDir, out)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ForOutput(lockDir, out)
	if err != nil {
		t.Fatal(err)
	}

	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}

	err = second.Acquire()
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second Acquire() error = %v, want ErrLocked", err)
	}
	if !strings.Contains(err.Error(), out) {
		t.Errorf("error should name the output directory: %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatal(err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
	_ = second.Unlock()
}

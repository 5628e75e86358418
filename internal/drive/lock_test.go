package drive

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLockName(t *testing.T) {
	tests := []struct {
		device string
		want   string
	}{
		{"/dev/sr0", "dev-sr0.lock"},
		{"/dev/sr1", "dev-sr1.lock"},
		{"", "drive.lock"},
	}
	for _, tt := range tests {
		if got := lockName(tt.device); got != tt.want {
			t.Errorf("lockName(%q) = %q, want %q", tt.device, got, tt.want)
		}
	}
}

func TestLockAcquireRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := NewLock(dir, "/dev/sr0")
	if err != nil {
		t.Fatalf("NewLock: %v", err)
	}
	if !strings.HasPrefix(lock.Path(), dir) {
		t.Errorf("lock path %q not under %q", lock.Path(), dir)
	}

	ok, err := lock.TryAcquire()
	if err != nil {
		t.Fatalf("TryAcquire: %v", err)
	}
	if !ok {
		t.Fatal("could not acquire uncontended lock")
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	// Releasing again is harmless.
	if err := lock.Release(); err != nil {
		t.Fatalf("second Release: %v", err)
	}
}

func TestLockCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "locks")
	lock, err := NewLock(dir, "/dev/sr0")
	if err != nil {
		t.Fatalf("NewLock: %v", err)
	}
	ok, err := lock.TryAcquire()
	if err != nil || !ok {
		t.Fatalf("TryAcquire = (%v, %v), want (true, nil)", ok, err)
	}
	defer lock.Release()
}

func TestLockRejectsEmptyDir(t *testing.T) {
	if _, err := NewLock("", "/dev/sr0"); err == nil {
		t.Fatal("expected error for empty lock directory")
	}
}

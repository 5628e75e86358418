package drive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// Lock is a per-device advisory lock. Dumping a title takes the lock so two
// dvdstream processes do not fight over one drive's pickup head; metadata
// reads stay lock-free.
type Lock struct {
	path string
	fl   *flock.Flock
}

// NewLock creates a lock for device under lockDir. The directory is created
// if missing.
func NewLock(lockDir, device string) (*Lock, error) {
	lockDir = strings.TrimSpace(lockDir)
	if lockDir == "" {
		return nil, fmt.Errorf("lock directory is empty")
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory %s: %w", lockDir, err)
	}

	path := filepath.Join(lockDir, lockName(device))
	return &Lock{path: path, fl: flock.New(path)}, nil
}

// lockName flattens a device path into a stable file name, e.g.
// /dev/sr0 -> dev-sr0.lock.
func lockName(device string) string {
	name := strings.Trim(strings.TrimSpace(device), "/")
	name = strings.ReplaceAll(name, "/", "-")
	if name == "" {
		name = "drive"
	}
	return name + ".lock"
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// TryAcquire attempts the lock without blocking and reports whether it was
// obtained.
func (l *Lock) TryAcquire() (bool, error) {
	ok, err := l.fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	return ok, nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}

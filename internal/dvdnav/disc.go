package dvdnav

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SectorSize is the DVD logical block size in bytes.
const SectorSize = 2048

// Disc is an opened DVD volume rooted at a directory containing VIDEO_TS.
type Disc struct {
	root    string
	videoTS string
	closed  bool
}

// Open opens the DVD volume at path. The path must be a directory that either
// contains a VIDEO_TS subdirectory or is the VIDEO_TS directory itself.
func Open(path string) (*Disc, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("open disc: empty path")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open disc %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open disc %s: not a mounted DVD volume (expected a directory)", path)
	}

	// The given directory may itself be VIDEO_TS.
	if _, ok := resolveEntry(path, "VIDEO_TS.IFO"); ok {
		return &Disc{root: filepath.Dir(path), videoTS: path}, nil
	}

	videoTS, ok := resolveEntry(path, "VIDEO_TS")
	if !ok {
		return nil, fmt.Errorf("open disc %s: no VIDEO_TS directory", path)
	}
	if info, err := os.Stat(videoTS); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("open disc %s: VIDEO_TS is not a directory", path)
	}

	return &Disc{root: path, videoTS: videoTS}, nil
}

// Root returns the volume root directory.
func (d *Disc) Root() string {
	return d.root
}

// Close releases the disc. Handles derived from the disc stay independently
// owned; closing the disc does not invalidate already-open sector files.
func (d *Disc) Close() error {
	if d == nil || d.closed {
		return nil
	}
	d.closed = true
	return nil
}

// Fingerprint returns a hex SHA-256 over the VMG IFO bytes, identifying the
// disc content independent of mount point.
func (d *Disc) Fingerprint() (string, error) {
	if err := d.check(); err != nil {
		return "", err
	}
	path, ok := resolveEntry(d.videoTS, "VIDEO_TS.IFO")
	if !ok {
		return "", fmt.Errorf("fingerprint: VIDEO_TS.IFO missing in %s", d.videoTS)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (d *Disc) check() error {
	if d == nil {
		return fmt.Errorf("disc not open")
	}
	if d.closed {
		return fmt.Errorf("disc closed")
	}
	return nil
}

// resolveEntry finds name inside dir ignoring case and returns its full path.
func resolveEntry(dir, name string) (string, bool) {
	direct := filepath.Join(dir, name)
	if _, err := os.Stat(direct); err == nil {
		return direct, true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if strings.EqualFold(entry.Name(), name) {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}

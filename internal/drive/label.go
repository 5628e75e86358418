package drive

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	iso9660SectorSize = 2048
	// Primary volume descriptor location and layout per ECMA-119.
	pvdSector        = 16
	pvdTypePrimary   = 1
	pvdIdentifier    = "CD001"
	pvdVolumeIDStart = 40
	pvdVolumeIDEnd   = 72
)

// VolumeLabel reads the label of a disc. For a block device or image file it
// parses the ISO9660 primary volume descriptor; for a mounted directory it
// falls back to the directory name.
func VolumeLabel(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return strings.TrimSpace(filepath.Base(filepath.Clean(path))), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	sector := make([]byte, iso9660SectorSize)
	if _, err := file.ReadAt(sector, pvdSector*iso9660SectorSize); err != nil {
		return "", fmt.Errorf("read volume descriptor from %s: %w", path, err)
	}
	if sector[0] != pvdTypePrimary || string(sector[1:6]) != pvdIdentifier {
		return "", fmt.Errorf("%s: no ISO9660 primary volume descriptor", path)
	}

	return strings.TrimSpace(string(sector[pvdVolumeIDStart:pvdVolumeIDEnd])), nil
}

var (
	allDigitsPattern = regexp.MustCompile(`^\d+$`)
	shortCodePattern = regexp.MustCompile(`^[A-Z0-9_]{1,4}$`)
)

// IsUnusableLabel returns true if the label cannot identify the disc content:
// generic pressing-plant labels, bare numbers, and short technical codes.
func IsUnusableLabel(label string) bool {
	label = strings.TrimSpace(label)
	if label == "" {
		return true
	}

	upper := strings.ToUpper(label)

	patterns := []string{
		"LOGICAL_VOLUME_ID", "VOLUME_ID", "DVD_VIDEO", "DVDVIDEO",
		"UNTITLED", "UNKNOWN DISC", "VOLUME_", "VOLUME ID", "DISK_", "TRACK_",
	}
	for _, pattern := range patterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}

	if allDigitsPattern.MatchString(label) {
		return true
	}
	if shortCodePattern.MatchString(upper) {
		return true
	}

	return false
}

// DisplayLabel turns a technical volume label like SOME_MOVIE_TITLE into a
// presentable string.
func DisplayLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "Unknown Disc"
	}
	label = strings.ReplaceAll(label, "_", " ")
	label = strings.Join(strings.Fields(label), " ")
	return cases.Title(language.Und).String(strings.ToLower(label))
}

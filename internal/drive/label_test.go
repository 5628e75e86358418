package drive

import (
	"os"
	"path/filepath"
	"testing"
)

func TestVolumeLabelFromDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "SOME_MOVIE")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	label, err := VolumeLabel(dir)
	if err != nil {
		t.Fatalf("VolumeLabel: %v", err)
	}
	if label != "SOME_MOVIE" {
		t.Errorf("label = %q, want SOME_MOVIE", label)
	}
}

func TestVolumeLabelFromImage(t *testing.T) {
	image := make([]byte, 17*iso9660SectorSize)
	pvd := image[pvdSector*iso9660SectorSize:]
	pvd[0] = pvdTypePrimary
	copy(pvd[1:6], pvdIdentifier)
	copy(pvd[pvdVolumeIDStart:pvdVolumeIDEnd], "MOVIE_DISC_1                    ")

	path := filepath.Join(t.TempDir(), "disc.iso")
	if err := os.WriteFile(path, image, 0o644); err != nil {
		t.Fatalf("write image: %v", err)
	}

	label, err := VolumeLabel(path)
	if err != nil {
		t.Fatalf("VolumeLabel: %v", err)
	}
	if label != "MOVIE_DISC_1" {
		t.Errorf("label = %q, want MOVIE_DISC_1", label)
	}
}

func TestVolumeLabelRejectsNonISO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.bin")
	if err := os.WriteFile(path, make([]byte, 17*iso9660SectorSize), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := VolumeLabel(path); err == nil {
		t.Fatal("expected error for file without a primary volume descriptor")
	}
}

func TestIsUnusableLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"", true},
		{"DVD_VIDEO", true},
		{"12345", true},
		{"AB1", true},
		{"LOGICAL_VOLUME_ID", true},
		{"SOME_GREAT_MOVIE", false},
		{"Inception", false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := IsUnusableLabel(tt.label); got != tt.want {
				t.Errorf("IsUnusableLabel(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"SOME_GREAT_MOVIE", "Some Great Movie"},
		{"  spaced   out  ", "Spaced Out"},
		{"", "Unknown Disc"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := DisplayLabel(tt.label); got != tt.want {
				t.Errorf("DisplayLabel(%q) = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}
